package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceRepo implements ports.InvoiceRepository.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, owner_id, blockchain_key, token_id, invoiced_amount, paid_amount,
	wallet_address, derivation_path, invoice_type, status, invoice_date, due_date,
	expired_date, paid_date, notified_date, created_at, updated_at`

// Create inserts a new invoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (id, owner_id, blockchain_key, token_id, invoiced_amount, paid_amount,
		wallet_address, derivation_path, invoice_type, status, invoice_date, due_date,
		expired_date, paid_date, notified_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.OwnerID, inv.Currency.BlockchainKey, inv.Currency.TokenID,
		inv.InvoicedAmount, inv.PaidAmount, inv.WalletAddress, inv.DerivationPath,
		inv.Type, inv.Status, inv.InvoiceDate, inv.DueDate,
		inv.ExpiredDate, inv.PaidDate, inv.NotifiedDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice by UUID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1`, invoiceColumns)

	inv := &domain.Invoice{}
	err := scanInvoiceFields(r.pool.QueryRow(ctx, query, id), inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// CreatePayment appends a matched on-chain payment within a transaction.
func (r *InvoiceRepo) CreatePayment(ctx context.Context, tx pgx.Tx, p *domain.InvoicePayment) error {
	query := `INSERT INTO invoice_payments (id, invoice_id, payment_hash, amount, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, p.ID, p.InvoiceID, p.PaymentHash, p.Amount, p.Date, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice payment: %w", err)
	}
	return nil
}

// GetPaymentByID fetches one payment row.
func (r *InvoiceRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*domain.InvoicePayment, error) {
	query := `SELECT id, invoice_id, payment_hash, amount, paid_at, created_at
		FROM invoice_payments WHERE id = $1`

	p := &domain.InvoicePayment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.InvoiceID, &p.PaymentHash, &p.Amount, &p.Date, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice payment: %w", err)
	}
	return p, nil
}

// ListPayments fetches all payments against an invoice, oldest first.
func (r *InvoiceRepo) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoicePayment, error) {
	query := `SELECT id, invoice_id, payment_hash, amount, paid_at, created_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_at ASC`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.InvoicePayment{}
	for rows.Next() {
		p := domain.InvoicePayment{}
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.PaymentHash, &p.Amount, &p.Date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice payment rows: %w", err)
	}
	return payments, nil
}

// AddToPaidAmount accumulates a payment into the invoice's paid total within
// a transaction. The status column is untouched.
func (r *InvoiceRepo) AddToPaidAmount(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, amount decimal.Decimal) error {
	query := `UPDATE invoices SET paid_amount = paid_amount + $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, amount, time.Now().UTC(), invoiceID)
	if err != nil {
		return fmt.Errorf("add to paid amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %s", invoiceID)
	}
	return nil
}

// UpdateStatus is the optimistic-concurrency guard: it updates only when the
// current status is one of from, and returns the affected row count. Zero
// rows is a definitive transition conflict for the caller to surface.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from []domain.InvoiceStatus, update ports.InvoiceStatusUpdate) (int64, error) {
	fromValues := make([]string, len(from))
	for i, s := range from {
		fromValues[i] = string(s)
	}

	query := `UPDATE invoices SET status = $1,
		paid_date = COALESCE($2, paid_date),
		expired_date = COALESCE($3, expired_date),
		notified_date = COALESCE($4, notified_date),
		updated_at = $5
		WHERE id = $6 AND status = ANY($7)`

	tag, err := tx.Exec(ctx, query,
		update.Status, update.PaidDate, update.ExpiredDate, update.NotifiedDate,
		time.Now().UTC(), id, fromValues,
	)
	if err != nil {
		return 0, fmt.Errorf("update invoice status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListActiveExpired fetches invoices still in an active state whose due date
// has passed, for the expiry sweep.
func (r *InvoiceRepo) ListActiveExpired(ctx context.Context, asOf time.Time, limit, offset int) ([]domain.Invoice, int64, error) {
	activeValues := make([]string, 0, 3)
	for _, s := range domain.ActiveInvoiceStatuses() {
		activeValues = append(activeValues, string(s))
	}

	countQuery := `SELECT COUNT(*) FROM invoices WHERE status = ANY($1) AND due_date IS NOT NULL AND due_date < $2`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, activeValues, asOf).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count active expired invoices: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices
		WHERE status = ANY($1) AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date ASC LIMIT $3 OFFSET $4`, invoiceColumns)

	rows, err := r.pool.Query(ctx, query, activeValues, asOf, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list active expired invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv := domain.Invoice{}
		if err := scanInvoiceFields(rows, &inv); err != nil {
			return nil, 0, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return invoices, total, nil
}

func scanInvoiceFields(row pgx.Row, inv *domain.Invoice) error {
	return row.Scan(
		&inv.ID, &inv.OwnerID, &inv.Currency.BlockchainKey, &inv.Currency.TokenID,
		&inv.InvoicedAmount, &inv.PaidAmount, &inv.WalletAddress, &inv.DerivationPath,
		&inv.Type, &inv.Status, &inv.InvoiceDate, &inv.DueDate,
		&inv.ExpiredDate, &inv.PaidDate, &inv.NotifiedDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
}
