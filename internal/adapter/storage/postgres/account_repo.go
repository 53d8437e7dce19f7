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

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, owner_id, blockchain_key, token_id, account_type, balance, created_at, updated_at`

// Upsert inserts the account; an existing (owner, currency, type) tuple wins
// and the insert becomes a no-op.
func (r *AccountRepo) Upsert(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, owner_id, blockchain_key, token_id, account_type, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, blockchain_key, token_id, account_type) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.OwnerID, a.Currency.BlockchainKey, a.Currency.TokenID,
		a.Type, a.Balance, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

// GetByUnique fetches an account by its identifying tuple.
func (r *AccountRepo) GetByUnique(ctx context.Context, owner uuid.UUID, currency domain.CurrencyKey, accountType domain.AccountType) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts
		WHERE owner_id = $1 AND blockchain_key = $2 AND token_id = $3 AND account_type = $4`, accountColumns)

	return r.scanAccount(r.pool.QueryRow(ctx, query, owner, currency.BlockchainKey, currency.TokenID, accountType))
}

// GetByID fetches an account by UUID (non-locking read).
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1`, accountColumns)
	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches an account with a row lock inside tx. Concurrent
// mutations on the same account serialize on this lock.
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id = $1 FOR UPDATE`, accountColumns)
	return r.scanAccount(tx.QueryRow(ctx, query, id))
}

// ListByOwner fetches all of an owner's accounts ordered by currency key.
func (r *AccountRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE owner_id = $1
		ORDER BY blockchain_key, token_id, account_type`, accountColumns)

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a := domain.Account{}
		if err := scanAccountFields(rows, &a); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return accounts, nil
}

// UpdateBalance sets the maintained balance within a database transaction.
func (r *AccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, balance, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

func (r *AccountRepo) scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := scanAccountFields(row, a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func scanAccountFields(row pgx.Row, a *domain.Account) error {
	return row.Scan(
		&a.ID, &a.OwnerID, &a.Currency.BlockchainKey, &a.Currency.TokenID,
		&a.Type, &a.Balance, &a.CreatedAt, &a.UpdatedAt,
	)
}

// MutationRepo implements ports.MutationRepository.
type MutationRepo struct {
	pool Pool
}

// NewMutationRepo creates a new MutationRepo.
func NewMutationRepo(pool Pool) *MutationRepo {
	return &MutationRepo{pool: pool}
}

// Create appends an immutable ledger entry within a database transaction.
func (r *MutationRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.AccountMutation) error {
	query := `INSERT INTO account_mutations (id, account_id, mutation_type, amount, occurred_at,
		invoice_id, withdrawal_id, invoice_payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		m.ID, m.AccountID, m.Type, m.Amount, m.Date,
		m.InvoiceID, m.WithdrawalID, m.InvoicePaymentID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account mutation: %w", err)
	}
	return nil
}

// List fetches mutations with filtering and pagination, newest first.
func (r *MutationRepo) List(ctx context.Context, params ports.MutationListParams) ([]domain.AccountMutation, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("account_id = $%d", argIdx))
	args = append(args, params.AccountID)
	argIdx++

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("mutation_type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("occurred_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("occurred_at <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM account_mutations %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count account mutations: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT id, account_id, mutation_type, amount, occurred_at,
		invoice_id, withdrawal_id, invoice_payment_id, created_at
		FROM account_mutations %s ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list account mutations: %w", err)
	}
	defer rows.Close()

	var mutations []domain.AccountMutation
	for rows.Next() {
		m := domain.AccountMutation{}
		err := rows.Scan(
			&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.Date,
			&m.InvoiceID, &m.WithdrawalID, &m.InvoicePaymentID, &m.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan mutation row: %w", err)
		}
		mutations = append(mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate mutation rows: %w", err)
	}
	return mutations, total, nil
}
