package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"treasury-core/internal/core/domain"
	"treasury-core/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BalanceAggregatorImpl implements ports.BalanceSource. It fans out one
// wallet call per chain and collects each outcome independently: one
// unresponsive chain degrades only its own entry.
type BalanceAggregatorImpl struct {
	wallets    map[string]ports.WalletClient
	hotWallets map[string]string // blockchain key -> hot wallet address
	timeout    time.Duration
	log        zerolog.Logger
}

// NewBalanceAggregator creates a new BalanceAggregatorImpl. timeout bounds
// each individual chain call.
func NewBalanceAggregator(
	wallets map[string]ports.WalletClient,
	hotWallets map[string]string,
	timeout time.Duration,
	log zerolog.Logger,
) *BalanceAggregatorImpl {
	return &BalanceAggregatorImpl{
		wallets:    wallets,
		hotWallets: hotWallets,
		timeout:    timeout,
		log:        log,
	}
}

// GetHotWalletBalance queries one chain's hot wallet balance.
func (a *BalanceAggregatorImpl) GetHotWalletBalance(ctx context.Context, blockchainKey string) (*domain.HotWalletBalance, error) {
	client, ok := a.wallets[blockchainKey]
	if !ok {
		return nil, fmt.Errorf("no wallet client for chain %s", blockchainKey)
	}
	address, ok := a.hotWallets[blockchainKey]
	if !ok {
		return nil, fmt.Errorf("no hot wallet address for chain %s", blockchainKey)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	balance, err := client.GetBalance(callCtx, address)
	if err != nil {
		return nil, fmt.Errorf("get balance on %s: %w", blockchainKey, err)
	}

	return &domain.HotWalletBalance{
		BlockchainKey: blockchainKey,
		Address:       address,
		Balance:       balance,
	}, nil
}

// GetHotWalletBalances fans out one call per chain and waits for all of
// them. A chain that fails or times out yields an error entry in its slot;
// it never aborts or contaminates the other chains, and the call itself
// never returns a batch error.
func (a *BalanceAggregatorImpl) GetHotWalletBalances(ctx context.Context, blockchainKeys []string) ([]domain.ChainBalanceResult, error) {
	results := make([]domain.ChainBalanceResult, len(blockchainKeys))

	var wg sync.WaitGroup
	for i, key := range blockchainKeys {
		wg.Add(1)
		go func(slot int, blockchainKey string) {
			defer wg.Done()

			hwb, err := a.GetHotWalletBalance(ctx, blockchainKey)
			if err != nil {
				a.log.Warn().
					Err(err).
					Str("blockchain_key", blockchainKey).
					Msg("hot wallet balance query failed")
				results[slot] = domain.ChainBalanceResult{
					BlockchainKey: blockchainKey,
					Balance:       decimal.Zero,
					Err:           err,
				}
				return
			}
			results[slot] = domain.ChainBalanceResult{
				BlockchainKey: blockchainKey,
				Address:       hwb.Address,
				Balance:       hwb.Balance,
			}
		}(i, key)
	}
	wg.Wait()

	return results, nil
}
