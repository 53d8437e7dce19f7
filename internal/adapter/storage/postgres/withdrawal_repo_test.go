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

func newTestWithdrawal() *domain.Withdrawal {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Withdrawal{
		ID:            uuid.New(),
		BeneficiaryID: uuid.New(),
		OwnerID:       uuid.New(),
		Currency: domain.CurrencyKey{
			BlockchainKey: "eip155:1",
			TokenID:       "eip155:1/slip44:60",
		},
		RequestAmount: decimal.RequireFromString("750"),
		Status:        domain.WithdrawalStatusRequested,
		RequestDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func withdrawalTestColumns() []string {
	return []string{"id", "beneficiary_id", "owner_id", "blockchain_key", "token_id", "request_amount",
		"sent_amount", "sent_hash", "status", "request_date", "sent_date", "confirmed_date", "failed_date",
		"failure_reason", "refund_reviewer_id", "refund_approved_date", "refund_rejected_date",
		"refund_reject_reason", "created_at", "updated_at"}
}

func withdrawalRow(w *domain.Withdrawal) *pgxmock.Rows {
	return pgxmock.NewRows(withdrawalTestColumns()).AddRow(
		w.ID, w.BeneficiaryID, w.OwnerID, w.Currency.BlockchainKey, w.Currency.TokenID, w.RequestAmount,
		w.SentAmount, w.SentHash, w.Status, w.RequestDate, w.SentDate, w.ConfirmedDate, w.FailedDate,
		w.FailureReason, w.RefundReviewerID, w.RefundApprovedDate, w.RefundRejectedDate,
		w.RefundRejectReason, w.CreatedAt, w.UpdatedAt,
	)
}

func TestBeneficiaryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBeneficiaryRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	beneficiary := &domain.Beneficiary{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		BlockchainKey: "eip155:1",
		Address:       "0xpayout",
		CreatedAt:     now,
	}

	mock.ExpectExec("INSERT INTO beneficiaries").
		WithArgs(beneficiary.ID, beneficiary.OwnerID, beneficiary.BlockchainKey, beneficiary.Address, beneficiary.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), beneficiary)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeneficiaryRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBeneficiaryRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM beneficiaries WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "blockchain_key", "address", "created_at"}))

	beneficiary, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, beneficiary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeneficiaryRepo_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBeneficiaryRepo(mock)
	owner := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := pgxmock.NewRows([]string{"id", "owner_id", "blockchain_key", "address", "created_at"}).
		AddRow(uuid.New(), owner, "eip155:1", "0xone", now.Add(-time.Hour)).
		AddRow(uuid.New(), owner, "tron:mainnet", "Ttwo", now)

	mock.ExpectQuery("SELECT .+ FROM beneficiaries WHERE owner_id .+ ORDER BY created_at ASC").
		WithArgs(owner).
		WillReturnRows(rows)

	beneficiaries, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, beneficiaries, 2)
	assert.Equal(t, "0xone", beneficiaries[0].Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal()

	mock.ExpectExec("INSERT INTO withdrawals").
		WithArgs(
			w.ID, w.BeneficiaryID, w.OwnerID, w.Currency.BlockchainKey, w.Currency.TokenID, w.RequestAmount,
			w.SentAmount, w.SentHash, w.Status, w.RequestDate, w.SentDate, w.ConfirmedDate, w.FailedDate,
			w.FailureReason, w.RefundReviewerID, w.RefundApprovedDate, w.RefundRejectedDate,
			w.RefundRejectReason, w.CreatedAt, w.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal()

	mock.ExpectQuery("SELECT .+ FROM withdrawals WHERE id").
		WithArgs(w.ID).
		WillReturnRows(withdrawalRow(w))

	result, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.Equal(t, domain.WithdrawalStatusRequested, result.Status)
	assert.Nil(t, result.SentAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM withdrawals WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(withdrawalTestColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_MarkSent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()
	sentAmount := decimal.RequireFromString("745")
	at := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusSent, sentAmount, "0xsenthash", at, pgxmock.AnyArg(),
			id, domain.WithdrawalStatusRequested,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.MarkSent(context.Background(), dbTx, id, sentAmount, "0xsenthash", at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_MarkSent_WrongState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusSent, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), domain.WithdrawalStatusRequested,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.MarkSent(context.Background(), dbTx, uuid.New(), decimal.Zero, "0x", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_MarkConfirmed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(domain.WithdrawalStatusConfirmed, at, pgxmock.AnyArg(), id, domain.WithdrawalStatusSent).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.MarkConfirmed(context.Background(), dbTx, id, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_MarkFailed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusFailed, at, "node rejected tx", pgxmock.AnyArg(),
			id, []string{string(domain.WithdrawalStatusRequested), string(domain.WithdrawalStatusSent)},
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.MarkFailed(context.Background(), dbTx, id, at, "node rejected tx")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_ApproveRefund(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()
	reviewer := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusRefundApproved, reviewer, at, pgxmock.AnyArg(),
			id, domain.WithdrawalStatusFailed,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.ApproveRefund(context.Background(), dbTx, id, reviewer, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_ApproveRefund_NotFailed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusRefundApproved, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), domain.WithdrawalStatusFailed,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.ApproveRefund(context.Background(), dbTx, uuid.New(), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_RejectRefund(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()
	reviewer := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawals SET status").
		WithArgs(
			domain.WithdrawalStatusRefundRejected, reviewer, at, "amount never left the hot wallet", pgxmock.AnyArg(),
			id, domain.WithdrawalStatusFailed,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, err := repo.RejectRefund(context.Background(), dbTx, id, reviewer, "amount never left the hot wallet", at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_SumRequestedSince(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	owner := uuid.New()
	currency := domain.CurrencyKey{BlockchainKey: "eip155:1", TokenID: "eip155:1/slip44:60"}
	since := time.Now().UTC().Truncate(24 * time.Hour)

	excluded := []string{
		string(domain.WithdrawalStatusFailed),
		string(domain.WithdrawalStatusRefundApproved),
	}

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(request_amount\\), 0\\) FROM withdrawals").
		WithArgs(owner, currency.BlockchainKey, currency.TokenID, since, excluded).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("420")))

	sum, err := repo.SumRequestedSince(context.Background(), owner, currency, since)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("420")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_SumRequestedSince_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(request_amount\\), 0\\) FROM withdrawals").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.Zero))

	sum, err := repo.SumRequestedSince(context.Background(), uuid.New(), domain.CurrencyKey{}, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM withdrawals").
		WithArgs(w.OwnerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM withdrawals .+ ORDER BY request_date DESC").
		WithArgs(w.OwnerID, 20, 0).
		WillReturnRows(withdrawalRow(w))

	withdrawals, total, err := repo.List(context.Background(), ports.WithdrawalListParams{
		OwnerID: w.OwnerID,
		Limit:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, w.ID, withdrawals[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_List_StatusFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	owner := uuid.New()
	status := domain.WithdrawalStatusFailed

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM withdrawals").
		WithArgs(owner, status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("SELECT .+ FROM withdrawals").
		WithArgs(owner, status, 20, 0).
		WillReturnRows(pgxmock.NewRows(withdrawalTestColumns()))

	withdrawals, total, err := repo.List(context.Background(), ports.WithdrawalListParams{
		OwnerID: owner,
		Status:  &status,
		Limit:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, withdrawals)
	assert.NoError(t, mock.ExpectationsWereMet())
}
