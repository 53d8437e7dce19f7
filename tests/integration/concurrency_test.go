package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccountCreation fires the same (owner, currency, type) tuple
// from many goroutines and verifies exactly one account materializes: the
// upsert-then-reload pattern must converge on a single row.
func TestConcurrentAccountCreation(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	concurrency := 50
	ids := make([]uuid.UUID, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			account, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypeCollateral)
			if err == nil {
				ids[idx] = account.ID
			}
		}(i)
	}
	wg.Wait()

	unique := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		require.NotEqual(t, uuid.Nil, id, "every caller must get an account")
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, 1, "all callers must converge on the same account")

	balances, err := app.ledger.GetBalances(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, balances, 1)
}

// TestConcurrentMutations posts mutations from many goroutines against one
// account. The append-only log must record every posting.
//
// NOTE: with real PostgreSQL, GetByIDForUpdate takes a row lock so postings
// serialize and the maintained balance lands exactly on the log sum. The
// in-memory repo has no row-level locks, so the read-modify-write on the
// balance column can lose updates here; the log itself is the invariant this
// test pins down.
func TestConcurrentMutations(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	account, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypeCollateral)
	require.NoError(t, err)

	concurrency := 40
	var wg sync.WaitGroup
	var failures atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.ledger.RecordMutation(ctx, ports.MutationParams{
				AccountID: account.ID,
				Type:      domain.MutationManualAdjustment,
				Amount:    decimal.NewFromInt(10),
				Date:      time.Now().UTC(),
			})
			if err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(0), failures.Load())

	history, err := app.ledger.GetTransactionHistory(ctx, account.ID, ports.HistoryFilter{}, ports.Page{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(concurrency), history.TotalCount, "no posting may be lost")
}

// TestConcurrentRefundDecision races approvals against rejections on one
// failed withdrawal. The conditional update guarded on Failed must let
// exactly one decision through, and the ledger must be credited exactly once
// if and only if the approval won.
func TestConcurrentRefundDecision(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()
	ethNative := domain.CurrencyKey{BlockchainKey: "eip155:1", TokenID: "eip155:1/slip44:60"}

	beneficiary, err := app.withdrawalSvc.RegisterBeneficiary(ctx, owner, "eip155:1", "0xpayout")
	require.NoError(t, err)

	w, err := app.withdrawalSvc.RequestWithdrawal(ctx, beneficiary.ID, ethNative, decimal.NewFromInt(300), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, app.withdrawalSvc.MarkSent(ctx, w.ID, decimal.NewFromInt(300), "0xhash", time.Now().UTC()))
	require.NoError(t, app.withdrawalSvc.MarkFailed(ctx, w.ID, time.Now().UTC(), "reverted"))

	concurrency := 20
	reviewer := uuid.New()

	var wg sync.WaitGroup
	var approvals atomic.Int64
	var rejections atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if idx%2 == 0 {
				if err := app.withdrawalSvc.ApproveRefund(ctx, w.ID, reviewer, time.Now().UTC()); err == nil {
					approvals.Add(1)
				}
			} else {
				if err := app.withdrawalSvc.RejectRefund(ctx, w.ID, reviewer, "not eligible", time.Now().UTC()); err == nil {
					rejections.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	decided := approvals.Load() + rejections.Load()
	assert.Equal(t, int64(1), decided, "exactly one refund decision may win")

	final, err := app.withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, final.Status == domain.WithdrawalStatusRefundApproved ||
		final.Status == domain.WithdrawalStatusRefundRejected)

	// Ledger credit exactly once, and only for an approval.
	account, err := app.accounts.GetByUnique(ctx, owner, ethNative, domain.AccountTypePrincipal)
	require.NoError(t, err)
	if approvals.Load() == 1 {
		require.NotNil(t, account)
		assert.Equal(t, domain.WithdrawalStatusRefundApproved, final.Status)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(300)))

		history, err := app.ledger.GetTransactionHistory(ctx, account.ID, ports.HistoryFilter{}, ports.Page{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), history.TotalCount)
		assert.Equal(t, domain.MutationWithdrawalRefunded, history.Mutations[0].Type)
	} else {
		assert.Equal(t, domain.WithdrawalStatusRefundRejected, final.Status)
	}
}
