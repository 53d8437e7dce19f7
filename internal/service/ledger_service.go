package service

import (
	"context"
	"fmt"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"
	"treasury-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.AccountLedger. The maintained balance
// and the append-only mutation log move together inside one transaction, so
// replaying the log always reproduces the balance.
type LedgerServiceImpl struct {
	accountRepo  ports.AccountRepository
	mutationRepo ports.MutationRepository
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	mutationRepo ports.MutationRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accountRepo:  accountRepo,
		mutationRepo: mutationRepo,
		transactor:   transactor,
		log:          log,
	}
}

// GetOrCreateAccount upserts the (owner, currency, type) account. Calling it
// twice with the same tuple returns the same account; an existing account is
// returned unchanged.
func (s *LedgerServiceImpl) GetOrCreateAccount(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, accountType domain.AccountType) (*domain.Account, error) {
	existing, err := s.accountRepo.GetByUnique(ctx, owner, currency, accountType)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		OwnerID:   owner,
		Currency:  currency,
		Type:      accountType,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("upsert account: %w", err))
	}

	// Re-select: a concurrent creator may have won the conflict.
	created, err := s.accountRepo.GetByUnique(ctx, owner, currency, accountType)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload account: %w", err))
	}
	if created == nil {
		return nil, apperror.InternalError(fmt.Errorf("account vanished after upsert: %s", account.ID))
	}

	s.log.Info().
		Str("account_id", created.ID.String()).
		Str("owner_id", owner.String()).
		Str("currency", currency.String()).
		Str("account_type", string(accountType)).
		Msg("account created")

	return created, nil
}

// RecordMutation appends a ledger entry and updates the maintained balance
// in one transaction.
func (s *LedgerServiceImpl) RecordMutation(ctx context.Context, params ports.MutationParams) (*domain.AccountMutation, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	mutation, err := s.RecordMutationInTx(ctx, dbTx, params)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return mutation, nil
}

// RecordMutationInTx appends a ledger entry inside a caller-managed
// transaction. The account row lock serializes concurrent mutations on the
// same account, so the maintained balance never suffers a lost update.
func (s *LedgerServiceImpl) RecordMutationInTx(ctx context.Context, tx pgx.Tx, params ports.MutationParams) (*domain.AccountMutation, error) {
	account, err := s.accountRepo.GetByIDForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	now := time.Now().UTC()
	mutation := &domain.AccountMutation{
		ID:               uuid.New(),
		AccountID:        account.ID,
		Type:             params.Type,
		Amount:           params.Amount,
		Date:             params.Date,
		InvoiceID:        params.InvoiceID,
		WithdrawalID:     params.WithdrawalID,
		InvoicePaymentID: params.InvoicePaymentID,
		CreatedAt:        now,
	}

	if err := s.mutationRepo.Create(ctx, tx, mutation); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append mutation: %w", err))
	}

	newBalance := account.Balance.Add(params.Amount)
	if err := s.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	s.log.Info().
		Str("account_id", account.ID.String()).
		Str("mutation_type", string(params.Type)).
		Str("amount", params.Amount.String()).
		Str("new_balance", newBalance.String()).
		Msg("ledger mutation recorded")

	return mutation, nil
}

// GetBalances returns the owner's accounts ordered by currency key. Owners
// without accounts get an empty list.
func (s *LedgerServiceImpl) GetBalances(ctx context.Context, owner uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list accounts: %w", err))
	}
	return accounts, nil
}

// GetTransactionHistory pages through an account's mutations, newest first.
func (s *LedgerServiceImpl) GetTransactionHistory(ctx context.Context, accountID uuid.UUID, filter ports.HistoryFilter, page ports.Page) (*ports.HistoryPage, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	mutations, total, err := s.mutationRepo.List(ctx, ports.MutationListParams{
		AccountID: accountID,
		Type:      filter.Type,
		From:      filter.From,
		To:        filter.To,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list mutations: %w", err))
	}

	return &ports.HistoryPage{
		Mutations:  mutations,
		TotalCount: total,
		HasMore:    int64(page.Offset+len(mutations)) < total,
	}, nil
}
