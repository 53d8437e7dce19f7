package ports

import (
	"context"
	"time"

	"treasury-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for custody accounts.
// Methods accepting pgx.Tx run inside transaction blocks; GetByIDForUpdate
// takes a row lock so concurrent mutations on one account serialize.
type AccountRepository interface {
	// Upsert inserts the account unless the (owner, currency, type) tuple
	// already exists, in which case it is a no-op.
	Upsert(ctx context.Context, account *domain.Account) error
	GetByUnique(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, accountType domain.AccountType) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Account, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error
}

// MutationRepository defines persistence for the append-only ledger log.
type MutationRepository interface {
	Create(ctx context.Context, tx pgx.Tx, mutation *domain.AccountMutation) error
	List(ctx context.Context, params MutationListParams) ([]domain.AccountMutation, int64, error)
}

// MutationListParams holds filter + pagination for ledger history queries.
type MutationListParams struct {
	AccountID uuid.UUID
	Type      *domain.MutationType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// InvoiceRepository defines persistence operations for invoices and their
// payments. UpdateStatus is a conditional update: it matches only rows whose
// current status is in from, and reports how many rows it touched. Zero is a
// definitive answer, never an error to suppress.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	CreatePayment(ctx context.Context, tx pgx.Tx, payment *domain.InvoicePayment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*domain.InvoicePayment, error)
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoicePayment, error)
	AddToPaidAmount(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, amount decimal.Decimal) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from []domain.InvoiceStatus, update InvoiceStatusUpdate) (int64, error)
	ListActiveExpired(ctx context.Context, asOf time.Time, limit, offset int) ([]domain.Invoice, int64, error)
}

// InvoiceStatusUpdate carries the target status and the transition-event
// timestamps set alongside it.
type InvoiceStatusUpdate struct {
	Status       domain.InvoiceStatus
	PaidDate     *time.Time
	ExpiredDate  *time.Time
	NotifiedDate *time.Time
}

// BeneficiaryRepository defines persistence for withdrawal destinations.
// Rows are append-only; no uniqueness is enforced.
type BeneficiaryRepository interface {
	Create(ctx context.Context, beneficiary *domain.Beneficiary) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Beneficiary, error)
}

// WithdrawalRepository defines persistence for the withdrawal lifecycle.
// Every transition method is a conditional update on the expected current
// status and returns the affected row count: zero rows means the withdrawal
// was missing or in a different state, which the caller must surface as a
// transition conflict.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error)
	MarkSent(ctx context.Context, tx pgx.Tx, id uuid.UUID, sentAmount decimal.Decimal, sentHash string, at time.Time) (int64, error)
	MarkConfirmed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (int64, error)
	MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time, reason string) (int64, error)
	ApproveRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, at time.Time) (int64, error)
	RejectRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, reason string, at time.Time) (int64, error)
	SumRequestedSince(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, since time.Time) (decimal.Decimal, error)
	List(ctx context.Context, params WithdrawalListParams) ([]domain.Withdrawal, int64, error)
}

// WithdrawalListParams holds filter + pagination for withdrawal listings.
type WithdrawalListParams struct {
	OwnerID uuid.UUID
	Status  *domain.WithdrawalStatus
	Limit   int
	Offset  int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
