package postgres

import (
	"context"
	"testing"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice() *domain.Invoice {
	now := time.Now().UTC().Truncate(time.Microsecond)
	due := now.Add(24 * time.Hour)
	return &domain.Invoice{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Currency: domain.CurrencyKey{
			BlockchainKey: "eip155:1",
			TokenID:       "eip155:1/erc20:0xdac17f958d2ee523a2206206994597c13d831ec7",
		},
		InvoicedAmount: decimal.RequireFromString("5000"),
		PaidAmount:     decimal.Zero,
		WalletAddress:  "0xdeposit",
		DerivationPath: "m/44'/60'/0'/0/7",
		Type:           domain.InvoiceTypeLoanRepayment,
		Status:         domain.InvoiceStatusPending,
		InvoiceDate:    now,
		DueDate:        &due,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func invoiceTestColumns() []string {
	return []string{"id", "owner_id", "blockchain_key", "token_id", "invoiced_amount", "paid_amount",
		"wallet_address", "derivation_path", "invoice_type", "status", "invoice_date", "due_date",
		"expired_date", "paid_date", "notified_date", "created_at", "updated_at"}
}

func invoiceRow(inv *domain.Invoice) *pgxmock.Rows {
	return pgxmock.NewRows(invoiceTestColumns()).AddRow(
		inv.ID, inv.OwnerID, inv.Currency.BlockchainKey, inv.Currency.TokenID,
		inv.InvoicedAmount, inv.PaidAmount, inv.WalletAddress, inv.DerivationPath,
		inv.Type, inv.Status, inv.InvoiceDate, inv.DueDate,
		inv.ExpiredDate, inv.PaidDate, inv.NotifiedDate, inv.CreatedAt, inv.UpdatedAt,
	)
}

func TestInvoiceRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(
			inv.ID, inv.OwnerID, inv.Currency.BlockchainKey, inv.Currency.TokenID,
			inv.InvoicedAmount, inv.PaidAmount, inv.WalletAddress, inv.DerivationPath,
			inv.Type, inv.Status, inv.InvoiceDate, inv.DueDate,
			inv.ExpiredDate, inv.PaidDate, inv.NotifiedDate, inv.CreatedAt, inv.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), inv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(inv.ID).
		WillReturnRows(invoiceRow(inv))

	result, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, inv.ID, result.ID)
	assert.Equal(t, domain.InvoiceStatusPending, result.Status)
	assert.True(t, result.InvoicedAmount.Equal(inv.InvoicedAmount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(invoiceTestColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_CreatePayment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	payment := &domain.InvoicePayment{
		ID:          uuid.New(),
		InvoiceID:   uuid.New(),
		PaymentHash: "0xabc123",
		Amount:      decimal.RequireFromString("1200"),
		Date:        now,
		CreatedAt:   now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO invoice_payments").
		WithArgs(payment.ID, payment.InvoiceID, payment.PaymentHash, payment.Amount, payment.Date, payment.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.CreatePayment(context.Background(), dbTx, payment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetPaymentByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM invoice_payments WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_id", "payment_hash", "amount", "paid_at", "created_at"}))

	payment, err := repo.GetPaymentByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ListPayments(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	invoiceID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows([]string{"id", "invoice_id", "payment_hash", "amount", "paid_at", "created_at"}).
		AddRow(uuid.New(), invoiceID, "0xfirst", decimal.RequireFromString("100"), now.Add(-2*time.Hour), now).
		AddRow(uuid.New(), invoiceID, "0xsecond", decimal.RequireFromString("400"), now.Add(-time.Hour), now)

	mock.ExpectQuery("SELECT .+ FROM invoice_payments WHERE invoice_id .+ ORDER BY paid_at ASC").
		WithArgs(invoiceID).
		WillReturnRows(rows)

	payments, err := repo.ListPayments(context.Background(), invoiceID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "0xfirst", payments[0].PaymentHash)
	assert.Equal(t, "0xsecond", payments[1].PaymentHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_AddToPaidAmount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	invoiceID := uuid.New()
	amount := decimal.RequireFromString("250")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invoices SET paid_amount = paid_amount").
		WithArgs(amount, pgxmock.AnyArg(), invoiceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.AddToPaidAmount(context.Background(), dbTx, invoiceID, amount)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_AddToPaidAmount_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invoices SET paid_amount = paid_amount").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.AddToPaidAmount(context.Background(), dbTx, uuid.New(), decimal.RequireFromString("1"))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	invoiceID := uuid.New()
	paidDate := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs(
			domain.InvoiceStatusPaid, &paidDate, (*time.Time)(nil), (*time.Time)(nil),
			pgxmock.AnyArg(), invoiceID, pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.UpdateStatus(context.Background(), dbTx, invoiceID,
		domain.InvoiceStatusPredecessors(domain.InvoiceStatusPaid),
		ports.InvoiceStatusUpdate{Status: domain.InvoiceStatusPaid, PaidDate: &paidDate},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateStatus_Conflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	invoiceID := uuid.New()
	expiredDate := time.Now().UTC().Truncate(time.Microsecond)

	// Status already left the active set: zero rows, no error.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs(
			domain.InvoiceStatusExpired, (*time.Time)(nil), &expiredDate, (*time.Time)(nil),
			pgxmock.AnyArg(), invoiceID, pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.UpdateStatus(context.Background(), dbTx, invoiceID,
		domain.InvoiceStatusPredecessors(domain.InvoiceStatusExpired),
		ports.InvoiceStatusUpdate{Status: domain.InvoiceStatusExpired, ExpiredDate: &expiredDate},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ListActiveExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	asOf := time.Now().UTC().Truncate(time.Microsecond)
	overdue := newTestInvoice()
	overdue.Status = domain.InvoiceStatusOverdue

	activeValues := []string{
		string(domain.InvoiceStatusPending),
		string(domain.InvoiceStatusPartiallyPaid),
		string(domain.InvoiceStatusOverdue),
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM invoices").
		WithArgs(activeValues, asOf).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM invoices .+ ORDER BY due_date ASC").
		WithArgs(activeValues, asOf, 50, 0).
		WillReturnRows(invoiceRow(overdue))

	invoices, total, err := repo.ListActiveExpired(context.Background(), asOf, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invoices, 1)
	assert.Equal(t, overdue.ID, invoices[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
