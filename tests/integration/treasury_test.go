package integration

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"treasury-core/config"
	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"
	"treasury-core/internal/service"
	"treasury-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTreasury wires the core services against in-memory repositories so the
// full flows run without PostgreSQL.
type testTreasury struct {
	accounts      *inMemoryAccountRepo
	mutations     *inMemoryMutationRepo
	invoices      *inMemoryInvoiceRepo
	beneficiaries *inMemoryBeneficiaryRepo
	withdrawals   *inMemoryWithdrawalRepo

	ledger        *service.LedgerServiceImpl
	invoiceSvc    *service.InvoiceServiceImpl
	withdrawalSvc *service.WithdrawalServiceImpl
}

func newTestTreasury(t *testing.T) *testTreasury {
	t.Helper()

	app := &testTreasury{
		accounts:      newInMemoryAccountRepo(),
		mutations:     newInMemoryMutationRepo(),
		invoices:      newInMemoryInvoiceRepo(),
		beneficiaries: newInMemoryBeneficiaryRepo(),
		withdrawals:   newInMemoryWithdrawalRepo(),
	}

	transactor := newInMemoryTransactor()
	log := zerolog.Nop()

	app.ledger = service.NewLedgerService(app.accounts, app.mutations, transactor, log)
	app.invoiceSvc = service.NewInvoiceService(app.invoices, app.ledger, transactor, log)
	app.withdrawalSvc = service.NewWithdrawalService(
		app.beneficiaries, app.withdrawals, app.ledger, transactor,
		config.TreasuryConfig{
			DailyWithdrawalLimit: "1000000",
			DailyLimitOverrides:  map[string]string{"eip155:1/slip44:60": "500"},
		},
		log,
	)
	return app
}

func usdtOnEthereum() domain.CurrencyKey {
	return domain.CurrencyKey{
		BlockchainKey: "eip155:1",
		TokenID:       "eip155:1/erc20:0xdac17f958d2ee523a2206206994597c13d831ec7",
	}
}

// TestLedgerBalanceMatchesMutationSum posts a random sequence of signed
// mutations and verifies the maintained balance always equals the sum of the
// append-only log.
func TestLedgerBalanceMatchesMutationSum(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	account, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypeCollateral)
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero())

	rng := rand.New(rand.NewSource(42))
	expected := decimal.Zero
	for i := 0; i < 50; i++ {
		// Signed amounts with fractional parts, e.g. -483.217.
		amount := decimal.NewFromInt(rng.Int63n(2000) - 1000).
			Add(decimal.NewFromInt(rng.Int63n(1000)).Div(decimal.NewFromInt(1000)))
		_, err := app.ledger.RecordMutation(ctx, ports.MutationParams{
			AccountID: account.ID,
			Type:      domain.MutationManualAdjustment,
			Amount:    amount,
			Date:      time.Now().UTC(),
		})
		require.NoError(t, err)
		expected = expected.Add(amount)
	}

	reloaded, err := app.accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(expected),
		"balance %s should equal mutation sum %s", reloaded.Balance, expected)

	history, err := app.ledger.GetTransactionHistory(ctx, account.ID, ports.HistoryFilter{}, ports.Page{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(50), history.TotalCount)

	sum := decimal.Zero
	for _, m := range history.Mutations {
		sum = sum.Add(m.Amount)
	}
	assert.True(t, sum.Equal(expected))
}

func TestGetOrCreateAccount_Idempotent(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	first, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypePrincipal)
	require.NoError(t, err)
	second, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypePrincipal)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	// A different account type under the same currency is a distinct account.
	other, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypeFee)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	balances, err := app.ledger.GetBalances(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, balances, 2)
}

func TestTransactionHistory_Pagination(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	account, err := app.ledger.GetOrCreateAccount(ctx, owner, usdtOnEthereum(), domain.AccountTypeCollateral)
	require.NoError(t, err)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := app.ledger.RecordMutation(ctx, ports.MutationParams{
			AccountID: account.ID,
			Type:      domain.MutationManualAdjustment,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Date:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	page, err := app.ledger.GetTransactionHistory(ctx, account.ID, ports.HistoryFilter{}, ports.Page{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.True(t, page.HasMore)
	require.Len(t, page.Mutations, 2)
	// Newest first: amounts 5, then 4.
	assert.True(t, page.Mutations[0].Amount.Equal(decimal.NewFromInt(5)))
	assert.True(t, page.Mutations[1].Amount.Equal(decimal.NewFromInt(4)))

	last, err := app.ledger.GetTransactionHistory(ctx, account.ID, ports.HistoryFilter{}, ports.Page{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.False(t, last.HasMore)
	require.Len(t, last.Mutations, 1)
	assert.True(t, last.Mutations[0].Amount.Equal(decimal.NewFromInt(1)))
}

// TestInvoiceLifecycle walks a repayment invoice from Pending through partial
// payment to fully Paid, verifying the ledger is credited exactly per payment
// and that payment intake alone never advances the status.
func TestInvoiceLifecycle(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	invoice, err := app.invoiceSvc.CreateInvoice(ctx, ports.CreateInvoiceParams{
		OwnerID:        owner,
		Currency:       usdtOnEthereum(),
		InvoicedAmount: decimal.RequireFromString("10000000000"),
		WalletAddress:  "0xdeposit",
		Type:           domain.InvoiceTypeLoanRepayment,
		InvoiceDate:    time.Now().UTC(),
		// No due date: the invoice can never expire.
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)

	// Intake alone does not change status.
	paymentDate := time.Now().UTC()
	payment, err := app.invoiceSvc.RecordPayment(ctx, invoice.ID, "0xpartial", decimal.RequireFromString("4000000000"), paymentDate)
	require.NoError(t, err)

	mid, err := app.invoices.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPending, mid.Status)
	assert.True(t, mid.PaidAmount.Equal(decimal.RequireFromString("4000000000")))

	// Settlement posts the ledger credit and moves to PartiallyPaid.
	settled, err := app.invoiceSvc.SettleInvoicePayment(ctx, invoice.ID, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPartiallyPaid, settled.Status)
	assert.Nil(t, settled.PaidDate)

	account, err := app.accounts.GetByUnique(ctx, owner, usdtOnEthereum(), domain.AccountTypePrincipal)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("4000000000")))

	// Second payment covers the remainder.
	finalDate := time.Now().UTC()
	payment2, err := app.invoiceSvc.RecordPayment(ctx, invoice.ID, "0xrest", decimal.RequireFromString("6000000000"), finalDate)
	require.NoError(t, err)
	paid, err := app.invoiceSvc.SettleInvoicePayment(ctx, invoice.ID, payment2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.True(t, paid.PaidDate.Equal(finalDate))

	account, err = app.accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("10000000000")))

	details, err := app.invoiceSvc.ViewDetails(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, details.Payments, 2)
}

func TestInvoiceExpirySweep(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()

	pastDue := time.Now().UTC().Add(-time.Hour)
	overdue, err := app.invoiceSvc.CreateInvoice(ctx, ports.CreateInvoiceParams{
		OwnerID:        owner,
		Currency:       usdtOnEthereum(),
		InvoicedAmount: decimal.NewFromInt(100),
		WalletAddress:  "0xdue",
		Type:           domain.InvoiceTypeLoanCollateral,
		InvoiceDate:    pastDue.Add(-24 * time.Hour),
		DueDate:        &pastDue,
	})
	require.NoError(t, err)

	eternal, err := app.invoiceSvc.CreateInvoice(ctx, ports.CreateInvoiceParams{
		OwnerID:        owner,
		Currency:       usdtOnEthereum(),
		InvoicedAmount: decimal.NewFromInt(100),
		WalletAddress:  "0xeternal",
		Type:           domain.InvoiceTypeLoanCollateral,
		InvoiceDate:    time.Now().UTC(),
	})
	require.NoError(t, err)

	sweeper := service.NewInvoiceExpirySweeper(app.invoiceSvc, time.Minute, 100, zerolog.Nop())
	sweeper.Sweep(ctx)

	expired, err := app.invoices.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusExpired, expired.Status)
	assert.NotNil(t, expired.ExpiredDate)

	// An invoice without a due date never expires.
	untouched, err := app.invoices.GetByID(ctx, eternal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPending, untouched.Status)
}

// TestWithdrawalLifecycle covers the happy path and the refund path, checking
// the ledger credit on approval and the daily limit accounting.
func TestWithdrawalLifecycle(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()
	ethNative := domain.CurrencyKey{BlockchainKey: "eip155:1", TokenID: "eip155:1/slip44:60"}

	beneficiary, err := app.withdrawalSvc.RegisterBeneficiary(ctx, owner, "eip155:1", "0xpayout")
	require.NoError(t, err)

	// Happy path: Requested -> Sent -> Confirmed.
	w1, err := app.withdrawalSvc.RequestWithdrawal(ctx, beneficiary.ID, ethNative, decimal.NewFromInt(100), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, app.withdrawalSvc.MarkSent(ctx, w1.ID, decimal.NewFromInt(99), "0xhash1", time.Now().UTC()))
	require.NoError(t, app.withdrawalSvc.MarkConfirmed(ctx, w1.ID, time.Now().UTC()))

	confirmed, err := app.withdrawals.GetByID(ctx, w1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusConfirmed, confirmed.Status)

	// Confirmed withdrawals cannot fail afterwards.
	err = app.withdrawalSvc.MarkFailed(ctx, w1.ID, time.Now().UTC(), "too late")
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WDR_002", appErr.Code)

	// Refund path: Requested -> Sent -> Failed -> RefundApproved.
	w2, err := app.withdrawalSvc.RequestWithdrawal(ctx, beneficiary.ID, ethNative, decimal.NewFromInt(200), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, app.withdrawalSvc.MarkSent(ctx, w2.ID, decimal.NewFromInt(200), "0xhash2", time.Now().UTC()))
	require.NoError(t, app.withdrawalSvc.MarkFailed(ctx, w2.ID, time.Now().UTC(), "reverted on chain"))

	// Limit override for native ETH is 500. The confirmed withdrawal (100)
	// consumes it; the failed one does not.
	remaining, err := app.withdrawalSvc.GetRemainingDailyLimit(ctx, owner, ethNative)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(400)), "remaining %s", remaining)

	reviewer := uuid.New()
	require.NoError(t, app.withdrawalSvc.ApproveRefund(ctx, w2.ID, reviewer, time.Now().UTC()))

	refunded, err := app.withdrawals.GetByID(ctx, w2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusRefundApproved, refunded.Status)
	require.NotNil(t, refunded.RefundReviewerID)
	assert.Equal(t, reviewer, *refunded.RefundReviewerID)

	// The refund credits the owner's principal account with the full
	// requested amount.
	account, err := app.accounts.GetByUnique(ctx, owner, ethNative, domain.AccountTypePrincipal)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(200)))

	// The approval keeps the withdrawal outside the daily limit.
	remaining, err = app.withdrawalSvc.GetRemainingDailyLimit(ctx, owner, ethNative)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(400)), "remaining %s", remaining)

	// Refund decision is final: a second approval must conflict.
	err = app.withdrawalSvc.ApproveRefund(ctx, w2.ID, reviewer, time.Now().UTC())
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WDR_003", appErr.Code)
}

func TestWithdrawalList_StatusFilter(t *testing.T) {
	app := newTestTreasury(t)
	ctx := context.Background()
	owner := uuid.New()
	ethNative := domain.CurrencyKey{BlockchainKey: "eip155:1", TokenID: "eip155:1/slip44:60"}

	beneficiary, err := app.withdrawalSvc.RegisterBeneficiary(ctx, owner, "eip155:1", "0xpayout")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		w, err := app.withdrawalSvc.RequestWithdrawal(ctx, beneficiary.ID, ethNative, decimal.NewFromInt(10), time.Now().UTC())
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, app.withdrawalSvc.MarkFailed(ctx, w.ID, time.Now().UTC(), fmt.Sprintf("failure %d", i)))
		}
	}

	failed := domain.WithdrawalStatusFailed
	withdrawals, total, err := app.withdrawalSvc.ListWithdrawals(ctx, owner, ports.Page{Limit: 10}, &failed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, domain.WithdrawalStatusFailed, withdrawals[0].Status)

	all, total, err := app.withdrawalSvc.ListWithdrawals(ctx, owner, ports.Page{Limit: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}
