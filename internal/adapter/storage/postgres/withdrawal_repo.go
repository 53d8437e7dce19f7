package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BeneficiaryRepo implements ports.BeneficiaryRepository.
type BeneficiaryRepo struct {
	pool Pool
}

// NewBeneficiaryRepo creates a new BeneficiaryRepo.
func NewBeneficiaryRepo(pool Pool) *BeneficiaryRepo {
	return &BeneficiaryRepo{pool: pool}
}

// Create appends a beneficiary. Duplicates are permitted.
func (r *BeneficiaryRepo) Create(ctx context.Context, b *domain.Beneficiary) error {
	query := `INSERT INTO beneficiaries (id, owner_id, blockchain_key, address, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, b.ID, b.OwnerID, b.BlockchainKey, b.Address, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// GetByID fetches a beneficiary by UUID.
func (r *BeneficiaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	query := `SELECT id, owner_id, blockchain_key, address, created_at FROM beneficiaries WHERE id = $1`

	b := &domain.Beneficiary{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.OwnerID, &b.BlockchainKey, &b.Address, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary by id: %w", err)
	}
	return b, nil
}

// ListByOwner fetches an owner's beneficiaries, oldest first.
func (r *BeneficiaryRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Beneficiary, error) {
	query := `SELECT id, owner_id, blockchain_key, address, created_at
		FROM beneficiaries WHERE owner_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	beneficiaries := []domain.Beneficiary{}
	for rows.Next() {
		b := domain.Beneficiary{}
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.BlockchainKey, &b.Address, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficiary row: %w", err)
		}
		beneficiaries = append(beneficiaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beneficiary rows: %w", err)
	}
	return beneficiaries, nil
}

// WithdrawalRepo implements ports.WithdrawalRepository. All transition
// methods are conditional updates on the expected current status; callers
// treat zero affected rows as a definitive conflict.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

const withdrawalColumns = `id, beneficiary_id, owner_id, blockchain_key, token_id, request_amount,
	sent_amount, sent_hash, status, request_date, sent_date, confirmed_date, failed_date,
	failure_reason, refund_reviewer_id, refund_approved_date, refund_rejected_date,
	refund_reject_reason, created_at, updated_at`

// Create inserts a new withdrawal in Requested state.
func (r *WithdrawalRepo) Create(ctx context.Context, w *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (id, beneficiary_id, owner_id, blockchain_key, token_id, request_amount,
		sent_amount, sent_hash, status, request_date, sent_date, confirmed_date, failed_date,
		failure_reason, refund_reviewer_id, refund_approved_date, refund_rejected_date,
		refund_reject_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.BeneficiaryID, w.OwnerID, w.Currency.BlockchainKey, w.Currency.TokenID, w.RequestAmount,
		w.SentAmount, w.SentHash, w.Status, w.RequestDate, w.SentDate, w.ConfirmedDate, w.FailedDate,
		w.FailureReason, w.RefundReviewerID, w.RefundApprovedDate, w.RefundRejectedDate,
		w.RefundRejectReason, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID fetches a withdrawal by UUID.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	query := fmt.Sprintf(`SELECT %s FROM withdrawals WHERE id = $1`, withdrawalColumns)

	w := &domain.Withdrawal{}
	err := scanWithdrawalFields(r.pool.QueryRow(ctx, query, id), w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal by id: %w", err)
	}
	return w, nil
}

// MarkSent moves Requested -> Sent.
func (r *WithdrawalRepo) MarkSent(ctx context.Context, tx pgx.Tx, id uuid.UUID, sentAmount decimal.Decimal, sentHash string, at time.Time) (int64, error) {
	query := `UPDATE withdrawals SET status = $1, sent_amount = $2, sent_hash = $3, sent_date = $4, updated_at = $5
		WHERE id = $6 AND status = $7`

	tag, err := tx.Exec(ctx, query,
		domain.WithdrawalStatusSent, sentAmount, sentHash, at, time.Now().UTC(),
		id, domain.WithdrawalStatusRequested,
	)
	if err != nil {
		return 0, fmt.Errorf("mark withdrawal sent: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkConfirmed moves Sent -> Confirmed.
func (r *WithdrawalRepo) MarkConfirmed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (int64, error) {
	query := `UPDATE withdrawals SET status = $1, confirmed_date = $2, updated_at = $3
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		domain.WithdrawalStatusConfirmed, at, time.Now().UTC(),
		id, domain.WithdrawalStatusSent,
	)
	if err != nil {
		return 0, fmt.Errorf("mark withdrawal confirmed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkFailed moves {Requested, Sent} -> Failed.
func (r *WithdrawalRepo) MarkFailed(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time, reason string) (int64, error) {
	query := `UPDATE withdrawals SET status = $1, failed_date = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5 AND status = ANY($6)`

	tag, err := tx.Exec(ctx, query,
		domain.WithdrawalStatusFailed, at, reason, time.Now().UTC(),
		id, []string{string(domain.WithdrawalStatusRequested), string(domain.WithdrawalStatusSent)},
	)
	if err != nil {
		return 0, fmt.Errorf("mark withdrawal failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ApproveRefund moves Failed -> RefundApproved. Refund fields are only ever
// written by this and RejectRefund, both guarded on Failed.
func (r *WithdrawalRepo) ApproveRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, at time.Time) (int64, error) {
	query := `UPDATE withdrawals SET status = $1, refund_reviewer_id = $2, refund_approved_date = $3, updated_at = $4
		WHERE id = $5 AND status = $6`

	tag, err := tx.Exec(ctx, query,
		domain.WithdrawalStatusRefundApproved, reviewerID, at, time.Now().UTC(),
		id, domain.WithdrawalStatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("approve withdrawal refund: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RejectRefund moves Failed -> RefundRejected.
func (r *WithdrawalRepo) RejectRefund(ctx context.Context, tx pgx.Tx, id uuid.UUID, reviewerID uuid.UUID, reason string, at time.Time) (int64, error) {
	query := `UPDATE withdrawals SET status = $1, refund_reviewer_id = $2, refund_rejected_date = $3,
		refund_reject_reason = $4, updated_at = $5
		WHERE id = $6 AND status = $7`

	tag, err := tx.Exec(ctx, query,
		domain.WithdrawalStatusRefundRejected, reviewerID, at, reason, time.Now().UTC(),
		id, domain.WithdrawalStatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("reject withdrawal refund: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumRequestedSince totals request amounts since the given instant,
// excluding statuses that do not count toward the daily limit.
func (r *WithdrawalRepo) SumRequestedSince(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, since time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(request_amount), 0) FROM withdrawals
		WHERE owner_id = $1 AND blockchain_key = $2 AND token_id = $3
		AND request_date >= $4 AND status != ALL($5)`

	excluded := []string{string(domain.WithdrawalStatusFailed), string(domain.WithdrawalStatusRefundApproved)}

	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, query, owner, currency.BlockchainKey, currency.TokenID, since, excluded).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum requested withdrawals: %w", err)
	}
	return sum, nil
}

// List fetches withdrawals with filtering and pagination, newest first.
func (r *WithdrawalRepo) List(ctx context.Context, params ports.WithdrawalListParams) ([]domain.Withdrawal, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
	args = append(args, params.OwnerID)
	argIdx++

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM withdrawals %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM withdrawals %s ORDER BY request_date DESC LIMIT $%d OFFSET $%d`,
		withdrawalColumns, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	withdrawals := []domain.Withdrawal{}
	for rows.Next() {
		w := domain.Withdrawal{}
		if err := scanWithdrawalFields(rows, &w); err != nil {
			return nil, 0, fmt.Errorf("scan withdrawal row: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return withdrawals, total, nil
}

func scanWithdrawalFields(row pgx.Row, w *domain.Withdrawal) error {
	return row.Scan(
		&w.ID, &w.BeneficiaryID, &w.OwnerID, &w.Currency.BlockchainKey, &w.Currency.TokenID, &w.RequestAmount,
		&w.SentAmount, &w.SentHash, &w.Status, &w.RequestDate, &w.SentDate, &w.ConfirmedDate, &w.FailedDate,
		&w.FailureReason, &w.RefundReviewerID, &w.RefundApprovedDate, &w.RefundRejectedDate,
		&w.RefundRejectReason, &w.CreatedAt, &w.UpdatedAt,
	)
}
