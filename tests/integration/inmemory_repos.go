package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Upsert(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.OwnerID == a.OwnerID && existing.Currency == a.Currency && existing.Type == a.Type {
			// Conflict on the identifying tuple: the existing row wins.
			return nil
		}
	}
	copied := *a
	r.accounts[a.ID] = &copied
	return nil
}

func (r *inMemoryAccountRepo) GetByUnique(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, accountType domain.AccountType) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.OwnerID == owner && a.Currency == currency && a.Type == accountType {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Account
	for _, a := range r.accounts {
		if a.OwnerID == owner {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Currency.TokenID < result[j].Currency.TokenID
	})
	return result, nil
}

func (r *inMemoryAccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account not found")
	}
	a.Balance = balance
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// --- In-Memory Mutation Repo ---

type inMemoryMutationRepo struct {
	mu        sync.RWMutex
	mutations []domain.AccountMutation
}

func newInMemoryMutationRepo() *inMemoryMutationRepo {
	return &inMemoryMutationRepo{}
}

func (r *inMemoryMutationRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.AccountMutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, *m)
	return nil
}

func (r *inMemoryMutationRepo) List(ctx context.Context, params ports.MutationListParams) ([]domain.AccountMutation, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []domain.AccountMutation
	for _, m := range r.mutations {
		if m.AccountID != params.AccountID {
			continue
		}
		if params.Type != nil && m.Type != *params.Type {
			continue
		}
		if params.From != nil && m.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && m.Date.After(*params.To) {
			continue
		}
		matched = append(matched, m)
	}
	// Newest first, matching the SQL ordering.
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	total := int64(len(matched))

	if params.Offset >= len(matched) {
		return []domain.AccountMutation{}, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], total, nil
}

// --- In-Memory Invoice Repo ---

type inMemoryInvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]*domain.Invoice
	payments map[uuid.UUID]*domain.InvoicePayment
}

func newInMemoryInvoiceRepo() *inMemoryInvoiceRepo {
	return &inMemoryInvoiceRepo{
		invoices: make(map[uuid.UUID]*domain.Invoice),
		payments: make(map[uuid.UUID]*domain.InvoicePayment),
	}
}

func (r *inMemoryInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *inv
	r.invoices[inv.ID] = &copied
	return nil
}

func (r *inMemoryInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (r *inMemoryInvoiceRepo) CreatePayment(ctx context.Context, tx pgx.Tx, p *domain.InvoicePayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *p
	r.payments[p.ID] = &copied
	return nil
}

func (r *inMemoryInvoiceRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*domain.InvoicePayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *inMemoryInvoiceRepo) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoicePayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.InvoicePayment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *inMemoryInvoiceRepo) AddToPaidAmount(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return fmt.Errorf("invoice not found")
	}
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryInvoiceRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from []domain.InvoiceStatus, update ports.InvoiceStatusUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return 0, nil
	}
	matched := false
	for _, s := range from {
		if inv.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return 0, nil
	}
	inv.Status = update.Status
	if update.PaidDate != nil {
		inv.PaidDate = update.PaidDate
	}
	if update.ExpiredDate != nil {
		inv.ExpiredDate = update.ExpiredDate
	}
	if update.NotifiedDate != nil {
		inv.NotifiedDate = update.NotifiedDate
	}
	inv.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *inMemoryInvoiceRepo) ListActiveExpired(ctx context.Context, asOf time.Time, limit, offset int) ([]domain.Invoice, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	active := make(map[domain.InvoiceStatus]struct{})
	for _, s := range domain.ActiveInvoiceStatuses() {
		active[s] = struct{}{}
	}
	var matched []domain.Invoice
	for _, inv := range r.invoices {
		if _, ok := active[inv.Status]; !ok {
			continue
		}
		if inv.DueDate == nil || !inv.DueDate.Before(asOf) {
			continue
		}
		matched = append(matched, *inv)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DueDate.Before(*matched[j].DueDate) })
	total := int64(len(matched))

	if offset >= len(matched) {
		return []domain.Invoice{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// --- In-Memory Beneficiary Repo ---

type inMemoryBeneficiaryRepo struct {
	mu            sync.RWMutex
	beneficiaries map[uuid.UUID]*domain.Beneficiary
}

func newInMemoryBeneficiaryRepo() *inMemoryBeneficiaryRepo {
	return &inMemoryBeneficiaryRepo{beneficiaries: make(map[uuid.UUID]*domain.Beneficiary)}
}

func (r *inMemoryBeneficiaryRepo) Create(ctx context.Context, b *domain.Beneficiary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.beneficiaries[b.ID] = &copied
	return nil
}

func (r *inMemoryBeneficiaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *inMemoryBeneficiaryRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Beneficiary
	for _, b := range r.beneficiaries {
		if b.OwnerID == owner {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu          sync.RWMutex
	withdrawals map[uuid.UUID]*domain.Withdrawal
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{withdrawals: make(map[uuid.UUID]*domain.Withdrawal)}
}

func (r *inMemoryWithdrawalRepo) Create(ctx context.Context, w *domain.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *w
	r.withdrawals[w.ID] = &copied
	return nil
}

func (r *inMemoryWithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return nil, nil
	}
	copied := *w
	return &copied, nil
}

// conditionalTransition mirrors the SQL conditional update: it mutates only
// when the current status matches, and reports the affected row count.
func (r *inMemoryWithdrawalRepo) conditionalTransition(id uuid.UUID, from []domain.WithdrawalStatus, apply func(w *domain.Withdrawal)) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return 0
	}
	matched := false
	for _, s := range from {
		if w.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return 0
	}
	apply(w)
	w.UpdatedAt = time.Now().UTC()
	return 1
}

func (r *inMemoryWithdrawalRepo) MarkSent(ctx context.Context, tx pgx.Tx, id uuid.UUID, sentAmount decimal.Decimal, sentHash string, at time.Time) (int64, error) {
	rows := r.conditionalTransition(id, []domain.WithdrawalStatus{domain.WithdrawalStatusRequested}, func(w *domain.Withdrawal) {
		w.Status = domain.WithdrawalStatusSent
		w.SentAmount = &sentAmount
		w.SentHash = &sentHash
		w.SentDate = &at
	})
	return rows, nil
}

func (r *inMemoryWithdrawalRepo) MarkConfirmed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (int64, error) {
	rows := r.conditionalTransition(id, []domain.WithdrawalStatus{domain.WithdrawalStatusSent}, func(w *domain.Withdrawal) {
		w.Status = domain.WithdrawalStatusConfirmed
		w.ConfirmedDate = &at
	})
	return rows, nil
}

func (r *inMemoryWithdrawalRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time, reason string) (int64, error) {
	from := []domain.WithdrawalStatus{domain.WithdrawalStatusRequested, domain.WithdrawalStatusSent}
	rows := r.conditionalTransition(id, from, func(w *domain.Withdrawal) {
		w.Status = domain.WithdrawalStatusFailed
		w.FailedDate = &at
		w.FailureReason = &reason
	})
	return rows, nil
}

func (r *inMemoryWithdrawalRepo) ApproveRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, at time.Time) (int64, error) {
	rows := r.conditionalTransition(id, []domain.WithdrawalStatus{domain.WithdrawalStatusFailed}, func(w *domain.Withdrawal) {
		w.Status = domain.WithdrawalStatusRefundApproved
		w.RefundReviewerID = &reviewerID
		w.RefundApprovedDate = &at
	})
	return rows, nil
}

func (r *inMemoryWithdrawalRepo) RejectRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, reason string, at time.Time) (int64, error) {
	rows := r.conditionalTransition(id, []domain.WithdrawalStatus{domain.WithdrawalStatusFailed}, func(w *domain.Withdrawal) {
		w.Status = domain.WithdrawalStatusRefundRejected
		w.RefundReviewerID = &reviewerID
		w.RefundRejectedDate = &at
		w.RefundRejectReason = &reason
	})
	return rows, nil
}

func (r *inMemoryWithdrawalRepo) SumRequestedSince(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, since time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for _, w := range r.withdrawals {
		if w.OwnerID != owner || w.Currency != currency {
			continue
		}
		if w.RequestDate.Before(since) {
			continue
		}
		if !w.Status.CountsTowardDailyLimit() {
			continue
		}
		sum = sum.Add(w.RequestAmount)
	}
	return sum, nil
}

func (r *inMemoryWithdrawalRepo) List(ctx context.Context, params ports.WithdrawalListParams) ([]domain.Withdrawal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []domain.Withdrawal
	for _, w := range r.withdrawals {
		if w.OwnerID != params.OwnerID {
			continue
		}
		if params.Status != nil && w.Status != *params.Status {
			continue
		}
		matched = append(matched, *w)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].RequestDate.After(matched[j].RequestDate) })
	total := int64(len(matched))

	if params.Offset >= len(matched) {
		return []domain.Withdrawal{}, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], total, nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
