package service

import (
	"context"
	"fmt"
	"time"

	"treasury-core/config"
	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"
	"treasury-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WithdrawalServiceImpl implements ports.WithdrawalStateMachine. Every
// transition is a conditional update on the expected current status; a zero
// row count is resolved into not-found or transition-conflict by re-reading
// the row.
type WithdrawalServiceImpl struct {
	beneficiaryRepo ports.BeneficiaryRepository
	withdrawalRepo  ports.WithdrawalRepository
	ledger          ports.AccountLedger
	transactor      ports.DBTransactor
	cfg             config.TreasuryConfig
	log             zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	beneficiaryRepo ports.BeneficiaryRepository,
	withdrawalRepo ports.WithdrawalRepository,
	ledger ports.AccountLedger,
	transactor ports.DBTransactor,
	cfg config.TreasuryConfig,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		beneficiaryRepo: beneficiaryRepo,
		withdrawalRepo:  withdrawalRepo,
		ledger:          ledger,
		transactor:      transactor,
		cfg:             cfg,
		log:             log,
	}
}

// RegisterBeneficiary stores a withdrawal destination. Duplicates are allowed.
func (s *WithdrawalServiceImpl) RegisterBeneficiary(ctx context.Context, owner uuid.UUID, blockchainKey, address string) (*domain.Beneficiary, error) {
	if address == "" {
		return nil, apperror.Validation("Beneficiary address must not be empty")
	}

	beneficiary := &domain.Beneficiary{
		ID:            uuid.New(),
		OwnerID:       owner,
		BlockchainKey: blockchainKey,
		Address:       address,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.beneficiaryRepo.Create(ctx, beneficiary); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create beneficiary: %w", err))
	}

	s.log.Info().
		Str("beneficiary_id", beneficiary.ID.String()).
		Str("owner_id", owner.String()).
		Str("blockchain_key", blockchainKey).
		Msg("beneficiary registered")

	return beneficiary, nil
}

// RequestWithdrawal opens a withdrawal in Requested. It does not debit the
// ledger and does not verify balance or remaining daily limit; callers check
// those preconditions through GetBalances and GetRemainingDailyLimit first.
func (s *WithdrawalServiceImpl) RequestWithdrawal(ctx context.Context, beneficiaryID uuid.UUID, currency domain.CurrencyKey, amount decimal.Decimal, requestDate time.Time) (*domain.Withdrawal, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, apperror.Validation("Withdrawal amount must be positive")
	}

	beneficiary, err := s.beneficiaryRepo.GetByID(ctx, beneficiaryID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get beneficiary: %w", err))
	}
	if beneficiary == nil {
		return nil, apperror.ErrBeneficiaryNotFound()
	}

	now := time.Now().UTC()
	withdrawal := &domain.Withdrawal{
		ID:            uuid.New(),
		BeneficiaryID: beneficiary.ID,
		OwnerID:       beneficiary.OwnerID,
		Currency:      currency,
		RequestAmount: amount,
		Status:        domain.WithdrawalStatusRequested,
		RequestDate:   requestDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create withdrawal: %w", err))
	}

	s.log.Info().
		Str("withdrawal_id", withdrawal.ID.String()).
		Str("owner_id", withdrawal.OwnerID.String()).
		Str("amount", amount.String()).
		Str("currency", currency.String()).
		Msg("withdrawal requested")

	return withdrawal, nil
}

// MarkSent moves Requested -> Sent, recording the broadcast transaction.
func (s *WithdrawalServiceImpl) MarkSent(ctx context.Context, id uuid.UUID, sentAmount decimal.Decimal, sentHash string, sentDate time.Time) error {
	return s.transition(ctx, id, "send update failed", func(tx pgx.Tx) (int64, error) {
		return s.withdrawalRepo.MarkSent(ctx, tx, id, sentAmount, sentHash, sentDate)
	})
}

// MarkConfirmed moves Sent -> Confirmed, the success terminal.
func (s *WithdrawalServiceImpl) MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedDate time.Time) error {
	return s.transition(ctx, id, "confirm update failed", func(tx pgx.Tx) (int64, error) {
		return s.withdrawalRepo.MarkConfirmed(ctx, tx, id, confirmedDate)
	})
}

// MarkFailed moves Requested or Sent -> Failed.
func (s *WithdrawalServiceImpl) MarkFailed(ctx context.Context, id uuid.UUID, failedDate time.Time, reason string) error {
	return s.transition(ctx, id, "fail update failed", func(tx pgx.Tx) (int64, error) {
		return s.withdrawalRepo.MarkFailed(ctx, tx, id, failedDate, reason)
	})
}

// transition runs one conditional status update in a transaction. Zero rows
// is resolved by re-reading: a missing row is not-found, anything else is a
// state conflict described by detail.
func (s *WithdrawalServiceImpl) transition(ctx context.Context, id uuid.UUID, detail string, update func(tx pgx.Tx) (int64, error)) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	rows, err := update(dbTx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("withdrawal transition: %w", err))
	}
	if rows == 0 {
		withdrawal, err := s.withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
		}
		if withdrawal == nil {
			return apperror.ErrWithdrawalNotFound()
		}
		return apperror.ErrWithdrawalInvalidTransition(fmt.Sprintf("%s: withdrawal is %s", detail, withdrawal.Status))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// ApproveRefund moves Failed -> RefundApproved and credits the owner's
// account with the original request amount, both in one transaction. If the
// conditional update matches nothing the whole operation rolls back, so a
// double approval can never credit twice.
func (s *WithdrawalServiceImpl) ApproveRefund(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, approvalDate time.Time) error {
	withdrawal, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if withdrawal == nil {
		return apperror.ErrWithdrawalNotFound()
	}

	account, err := s.ledger.GetOrCreateAccount(ctx, withdrawal.OwnerID, withdrawal.Currency, domain.AccountTypePrincipal)
	if err != nil {
		return err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	rows, err := s.withdrawalRepo.ApproveRefund(ctx, dbTx, id, reviewerID, approvalDate)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("approve refund: %w", err))
	}
	if rows == 0 {
		return apperror.ErrRefundApprovalFailed()
	}

	if _, err := s.ledger.RecordMutationInTx(ctx, dbTx, ports.MutationParams{
		AccountID:    account.ID,
		Type:         domain.MutationWithdrawalRefunded,
		Amount:       withdrawal.RequestAmount,
		Date:         approvalDate,
		WithdrawalID: &withdrawal.ID,
	}); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("withdrawal_id", id.String()).
		Str("reviewer_id", reviewerID.String()).
		Str("refund_amount", withdrawal.RequestAmount.String()).
		Msg("withdrawal refund approved")

	return nil
}

// RejectRefund moves Failed -> RefundRejected. No ledger posting happens.
func (s *WithdrawalServiceImpl) RejectRefund(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, reason string, rejectionDate time.Time) error {
	return s.transition(ctx, id, "refund rejection failed", func(tx pgx.Tx) (int64, error) {
		return s.withdrawalRepo.RejectRefund(ctx, tx, id, reviewerID, reason, rejectionDate)
	})
}

// GetRemainingDailyLimit returns the configured daily limit minus the amounts
// requested since midnight UTC. Failed and refund-approved withdrawals give
// their slice of the limit back.
func (s *WithdrawalServiceImpl) GetRemainingDailyLimit(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey) (decimal.Decimal, error) {
	limit, err := decimal.NewFromString(s.cfg.LimitFor(currency.TokenID))
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("parse daily limit: %w", err))
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	used, err := s.withdrawalRepo.SumRequestedSince(ctx, owner, currency, dayStart)
	if err != nil {
		return decimal.Zero, apperror.InternalError(fmt.Errorf("sum requested withdrawals: %w", err))
	}

	remaining := limit.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return remaining, nil
}

// ListWithdrawals pages over the owner's withdrawals, newest first, filtered
// by the stored status when stateFilter is set.
func (s *WithdrawalServiceImpl) ListWithdrawals(ctx context.Context, owner uuid.UUID, page ports.Page, stateFilter *domain.WithdrawalStatus) ([]domain.Withdrawal, int64, error) {
	withdrawals, total, err := s.withdrawalRepo.List(ctx, ports.WithdrawalListParams{
		OwnerID: owner,
		Status:  stateFilter,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return withdrawals, total, nil
}
