package service

import (
	"context"
	"fmt"
	"time"

	"treasury-core/config"
	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"
	"treasury-core/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SettlementServiceImpl implements ports.SettlementEngine. Plan computation
// is pure given a balance snapshot; ExecutePlan is the only effectful step
// and reports per-chain outcomes instead of failing the batch.
type SettlementServiceImpl struct {
	mapper   ports.AssetMapper
	balances ports.BalanceSource
	wallets  map[string]ports.WalletClient
	exchange ports.ExchangeClient
	locker   ports.SettlementLocker
	cfg      config.SettlementConfig
	log      zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	mapper ports.AssetMapper,
	balances ports.BalanceSource,
	wallets map[string]ports.WalletClient,
	exchange ports.ExchangeClient,
	locker ports.SettlementLocker,
	cfg config.SettlementConfig,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		mapper:   mapper,
		balances: balances,
		wallets:  wallets,
		exchange: exchange,
		locker:   locker,
		cfg:      cfg,
		log:      log,
	}
}

// RequiredExchangeBalance returns the exchange balance that would put the
// hot/exchange split exactly at ratio, given the current hot total:
// hot * ratio / (1 - ratio).
func RequiredExchangeBalance(hotTotal, ratio decimal.Decimal) decimal.Decimal {
	denom := decimal.NewFromInt(1).Sub(ratio)
	if denom.IsZero() {
		return hotTotal
	}
	return hotTotal.Mul(ratio).Div(denom)
}

// SettlementAmount returns the signed amount to move: positive deposits to
// the exchange, negative withdraws from it. It is the exchange's shortfall
// against ratio of the combined balance: (hot + exchange) * ratio - exchange.
func SettlementAmount(hotTotal, exchangeBalance, ratio decimal.Decimal) decimal.Decimal {
	return hotTotal.Add(exchangeBalance).Mul(ratio).Sub(exchangeBalance)
}

// ProportionalDistribution splits amount across chains in proportion to
// weights. The last share absorbs the rounding remainder so the shares always
// sum exactly to amount. Zero total weight splits evenly.
func ProportionalDistribution(amount decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return shares
	}

	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(w)
	}

	allocated := decimal.Zero
	for i := range weights {
		if i == len(weights)-1 {
			shares[i] = amount.Sub(allocated)
			break
		}
		if total.IsZero() {
			shares[i] = amount.Div(decimal.NewFromInt(int64(len(weights))))
		} else {
			shares[i] = amount.Mul(weights[i]).Div(total)
		}
		allocated = allocated.Add(shares[i])
	}
	return shares
}

// ComputeSettlementPlan snapshots balances and computes the per-chain
// transfers for one asset. Chains whose balance query failed are excluded
// from the plan and reported in FailedChains. Transfers below the dust
// minimum are kept but marked Skipped; their amount is not redistributed.
func (s *SettlementServiceImpl) ComputeSettlementPlan(ctx context.Context, asset string) (*domain.SettlementPlan, error) {
	chains := s.mapper.ChainsForAsset(asset)
	if len(chains) == 0 {
		return nil, apperror.ErrUnsupportedAsset(asset)
	}

	ratio, err := decimal.NewFromString(s.cfg.Ratio)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("parse settlement ratio: %w", err))
	}
	dust, err := decimal.NewFromString(s.cfg.DustMinimum)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("parse dust minimum: %w", err))
	}

	results, err := s.balances.GetHotWalletBalances(ctx, chains)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("aggregate hot balances: %w", err))
	}

	var healthy []domain.ChainBalanceResult
	var failed []domain.ChainBalanceResult
	hotTotal := decimal.Zero
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		healthy = append(healthy, r)
		hotTotal = hotTotal.Add(r.Balance)
	}

	exCtx, cancel := context.WithTimeout(ctx, s.cfg.ChainCallTimeout)
	defer cancel()
	exchangeBalance, err := s.exchange.GetBalance(exCtx, asset)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("exchange balance for %s: %w", asset, err))
	}

	amount := SettlementAmount(hotTotal, exchangeBalance, ratio)

	weights := make([]decimal.Decimal, len(healthy))
	for i, r := range healthy {
		weights[i] = r.Balance
	}
	shares := ProportionalDistribution(amount, weights)

	transfers := make([]domain.SettlementTransfer, len(healthy))
	for i, r := range healthy {
		network, _ := s.mapper.BlockchainKeyToNetwork(r.BlockchainKey)
		transfers[i] = domain.SettlementTransfer{
			BlockchainKey: r.BlockchainKey,
			Network:       network,
			HotAddress:    r.Address,
			HotBalance:    r.Balance,
			Amount:        shares[i],
			Skipped:       shares[i].Abs().LessThan(dust),
		}
	}

	plan := &domain.SettlementPlan{
		Asset:           asset,
		Ratio:           ratio,
		HotTotal:        hotTotal,
		ExchangeBalance: exchangeBalance,
		Amount:          amount,
		Transfers:       transfers,
		FailedChains:    failed,
		ComputedAt:      time.Now().UTC(),
	}

	s.log.Info().
		Str("asset", asset).
		Str("hot_total", hotTotal.String()).
		Str("exchange_balance", exchangeBalance.String()).
		Str("settlement_amount", amount.String()).
		Int("failed_chains", len(failed)).
		Msg("settlement plan computed")

	return plan, nil
}

// ExecutePlan runs each transfer in a plan. Positive amounts move hot funds
// to the exchange deposit address; negative amounts withdraw from the
// exchange to the hot wallet. One chain's failure never aborts the rest.
func (s *SettlementServiceImpl) ExecutePlan(ctx context.Context, plan *domain.SettlementPlan) []domain.SettlementResult {
	results := make([]domain.SettlementResult, 0, len(plan.Transfers))
	for _, t := range plan.Transfers {
		if t.Skipped {
			s.log.Debug().
				Str("asset", plan.Asset).
				Str("blockchain_key", t.BlockchainKey).
				Str("amount", t.Amount.String()).
				Msg("settlement transfer below dust minimum, skipped")
			continue
		}

		result := domain.SettlementResult{
			Asset:            plan.Asset,
			BlockchainKey:    t.BlockchainKey,
			OriginalBalance:  t.HotBalance,
			SettlementAmount: t.Amount,
			RemainingBalance: t.HotBalance.Sub(t.Amount),
			ExecutedAt:       time.Now().UTC(),
		}

		txHash, err := s.executeTransfer(ctx, plan.Asset, t)
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			result.RemainingBalance = t.HotBalance
			s.log.Error().
				Err(err).
				Str("asset", plan.Asset).
				Str("blockchain_key", t.BlockchainKey).
				Msg("settlement transfer failed")
		} else {
			result.Success = true
			result.TxHash = txHash
			s.log.Info().
				Str("asset", plan.Asset).
				Str("blockchain_key", t.BlockchainKey).
				Str("amount", t.Amount.String()).
				Str("tx_hash", txHash).
				Msg("settlement transfer executed")
		}

		results = append(results, result)
	}
	return results
}

func (s *SettlementServiceImpl) executeTransfer(ctx context.Context, asset string, t domain.SettlementTransfer) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ChainCallTimeout)
	defer cancel()

	if t.Amount.IsPositive() {
		depositAddr, err := s.exchange.GetDepositAddress(callCtx, asset, t.Network)
		if err != nil {
			return "", fmt.Errorf("deposit address for %s/%s: %w", asset, t.Network, err)
		}
		wallet, ok := s.wallets[t.BlockchainKey]
		if !ok {
			return "", fmt.Errorf("no wallet client for chain %s", t.BlockchainKey)
		}
		txHash, err := wallet.Transfer(callCtx, t.HotAddress, depositAddr, t.Amount)
		if err != nil {
			return "", fmt.Errorf("transfer on %s: %w", t.BlockchainKey, err)
		}
		return txHash, nil
	}

	txHash, err := s.exchange.Withdraw(callCtx, asset, t.Network, t.HotAddress, t.Amount.Neg())
	if err != nil {
		return "", fmt.Errorf("exchange withdraw to %s: %w", t.BlockchainKey, err)
	}
	return txHash, nil
}

// ExecuteSettlement is the full guarded run: take the per-asset lease,
// compute the plan, execute it. A held lease surfaces as a conflict; the
// lease is released when the run finishes.
func (s *SettlementServiceImpl) ExecuteSettlement(ctx context.Context, asset string) ([]domain.SettlementResult, error) {
	token, acquired, err := s.locker.Acquire(ctx, asset, s.cfg.LeaseTTL)
	if err != nil {
		return nil, apperror.ErrLeaseFailure(err)
	}
	if !acquired {
		return nil, apperror.ErrSettlementInProgress(asset)
	}
	defer func() {
		if err := s.locker.Release(ctx, asset, token); err != nil {
			s.log.Warn().Err(err).Str("asset", asset).Msg("settlement lease release failed")
		}
	}()

	plan, err := s.ComputeSettlementPlan(ctx, asset)
	if err != nil {
		return nil, err
	}
	return s.ExecutePlan(ctx, plan), nil
}
