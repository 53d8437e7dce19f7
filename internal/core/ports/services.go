package ports

import (
	"context"
	"time"

	"treasury-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountLedger owns accounts and their append-only mutation log.
// RecordMutationInTx participates in a caller-managed transaction so that
// status changes and their ledger postings commit atomically.
type AccountLedger interface {
	GetOrCreateAccount(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, accountType domain.AccountType) (*domain.Account, error)
	RecordMutation(ctx context.Context, params MutationParams) (*domain.AccountMutation, error)
	RecordMutationInTx(ctx context.Context, tx pgx.Tx, params MutationParams) (*domain.AccountMutation, error)
	GetBalances(ctx context.Context, owner uuid.UUID) ([]domain.Account, error)
	GetTransactionHistory(ctx context.Context, accountID uuid.UUID, filter HistoryFilter, page Page) (*HistoryPage, error)
}

// MutationParams describes one ledger posting.
type MutationParams struct {
	AccountID        uuid.UUID
	Type             domain.MutationType
	Amount           decimal.Decimal
	Date             time.Time
	InvoiceID        *uuid.UUID
	WithdrawalID     *uuid.UUID
	InvoicePaymentID *uuid.UUID
}

// HistoryFilter narrows a transaction history query.
type HistoryFilter struct {
	Type *domain.MutationType
	From *time.Time
	To   *time.Time
}

// Page is limit/offset pagination.
type Page struct {
	Limit  int
	Offset int
}

// HistoryPage is one page of ledger history, newest first.
type HistoryPage struct {
	Mutations  []domain.AccountMutation
	TotalCount int64
	HasMore    bool
}

// InvoiceTracker manages deposit intents and their matched payments.
type InvoiceTracker interface {
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID uuid.UUID, paymentHash string, amount decimal.Decimal, date time.Time) (*domain.InvoicePayment, error)
	SettleInvoicePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, invoiceID uuid.UUID, status domain.InvoiceStatus, expiredDate, notifiedDate *time.Time) error
	ViewDetails(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDetails, error)
	ListActiveButExpired(ctx context.Context, asOf time.Time, page Page) ([]domain.Invoice, int64, error)
	ExpireInvoice(ctx context.Context, invoiceID uuid.UUID, expiredDate time.Time) error
}

// CreateInvoiceParams describes a new deposit intent.
type CreateInvoiceParams struct {
	OwnerID        uuid.UUID
	Currency       domain.CurrencyKey
	InvoicedAmount decimal.Decimal
	WalletAddress  string
	DerivationPath string
	Type           domain.InvoiceType
	InvoiceDate    time.Time
	DueDate        *time.Time
}

// InvoiceDetails is an invoice together with its matched payments.
type InvoiceDetails struct {
	Invoice  domain.Invoice
	Payments []domain.InvoicePayment
}

// WithdrawalStateMachine manages the outbound transfer lifecycle.
// RequestWithdrawal does not debit the ledger and does not verify balance or
// daily-limit sufficiency: those are explicit caller preconditions, checked
// by the policy layer above via GetRemainingDailyLimit and GetBalances.
type WithdrawalStateMachine interface {
	RegisterBeneficiary(ctx context.Context, owner uuid.UUID, blockchainKey, address string) (*domain.Beneficiary, error)
	RequestWithdrawal(ctx context.Context, beneficiaryID uuid.UUID, currency domain.CurrencyKey, amount decimal.Decimal, requestDate time.Time) (*domain.Withdrawal, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAmount decimal.Decimal, sentHash string, sentDate time.Time) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedDate time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, failedDate time.Time, reason string) error
	ApproveRefund(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, approvalDate time.Time) error
	RejectRefund(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, reason string, rejectionDate time.Time) error
	GetRemainingDailyLimit(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey) (decimal.Decimal, error)
	ListWithdrawals(ctx context.Context, owner uuid.UUID, page Page, stateFilter *domain.WithdrawalStatus) ([]domain.Withdrawal, int64, error)
}

// AssetMapper groups chain-specific token identifiers under canonical
// exchange assets and networks.
type AssetMapper interface {
	TokenToAsset(tokenID string) (asset, network string, ok bool)
	BlockchainKeyToNetwork(blockchainKey string) (string, bool)
	IsSupported(tokenID string) bool
	SupportedTokens() []string
	ChainsForAsset(asset string) []string
}

// BalanceSource queries hot wallet balances, isolating per-chain failure.
type BalanceSource interface {
	GetHotWalletBalance(ctx context.Context, blockchainKey string) (*domain.HotWalletBalance, error)
	GetHotWalletBalances(ctx context.Context, blockchainKeys []string) ([]domain.ChainBalanceResult, error)
}

// SettlementEngine computes and executes liquidity rebalancing. Plan
// computation is pure given a balance snapshot; execution is the only
// effectful step and reports per-chain outcomes.
type SettlementEngine interface {
	ComputeSettlementPlan(ctx context.Context, asset string) (*domain.SettlementPlan, error)
	ExecutePlan(ctx context.Context, plan *domain.SettlementPlan) []domain.SettlementResult
	ExecuteSettlement(ctx context.Context, asset string) ([]domain.SettlementResult, error)
}
