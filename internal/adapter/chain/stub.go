// Package chain holds the wallet and exchange client adapters. Real chain
// and exchange integrations plug in behind ports.WalletClient and
// ports.ExchangeClient; the stubs here simulate them for dry runs.
package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StubWalletClient simulates a per-blockchain hot wallet. Transfers are
// logged and debited against an in-memory balance, and return a fake hash.
type StubWalletClient struct {
	mu            sync.Mutex
	blockchainKey string
	balances      map[string]decimal.Decimal
	log           zerolog.Logger
}

// NewStubWalletClient creates a simulated wallet for one blockchain, seeded
// with an opening balance per address.
func NewStubWalletClient(blockchainKey string, balances map[string]decimal.Decimal, log zerolog.Logger) *StubWalletClient {
	seeded := make(map[string]decimal.Decimal, len(balances))
	for addr, b := range balances {
		seeded[addr] = b
	}
	return &StubWalletClient{
		blockchainKey: blockchainKey,
		balances:      seeded,
		log:           log.With().Str("component", "stub_wallet").Str("blockchain_key", blockchainKey).Logger(),
	}
}

func (c *StubWalletClient) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	balance, ok := c.balances[address]
	if !ok {
		return decimal.Zero, nil
	}
	return balance, nil
}

func (c *StubWalletClient) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(100 * time.Millisecond): // simulated broadcast latency
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	balance := c.balances[from]
	if balance.LessThan(amount) {
		return "", fmt.Errorf("insufficient funds: have %s, need %s", balance, amount)
	}
	c.balances[from] = balance.Sub(amount)

	hash := fmt.Sprintf("tx_sim_%s_%d", c.blockchainKey, time.Now().UnixNano())
	c.log.Info().
		Str("from", from).
		Str("to", to).
		Str("amount", amount.String()).
		Str("hash", hash).
		Msg("Simulated transfer")
	return hash, nil
}

// StubExchangeClient simulates the centralized exchange custody account.
type StubExchangeClient struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal // asset -> balance
	log      zerolog.Logger
}

// NewStubExchangeClient creates a simulated exchange seeded with per-asset
// balances.
func NewStubExchangeClient(balances map[string]decimal.Decimal, log zerolog.Logger) *StubExchangeClient {
	seeded := make(map[string]decimal.Decimal, len(balances))
	for asset, b := range balances {
		seeded[asset] = b
	}
	return &StubExchangeClient{
		balances: seeded,
		log:      log.With().Str("component", "stub_exchange").Logger(),
	}
}

func (c *StubExchangeClient) GetBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[asset], nil
}

func (c *StubExchangeClient) GetDepositAddress(ctx context.Context, asset, network string) (string, error) {
	return fmt.Sprintf("sim-deposit-%s-%s", asset, network), nil
}

func (c *StubExchangeClient) Withdraw(ctx context.Context, asset, network, address string, amount decimal.Decimal) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(100 * time.Millisecond):
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	balance := c.balances[asset]
	if balance.LessThan(amount) {
		return "", fmt.Errorf("insufficient exchange balance: have %s, need %s", balance, amount)
	}
	c.balances[asset] = balance.Sub(amount)

	id := fmt.Sprintf("wd_sim_%s_%d", asset, time.Now().UnixNano())
	c.log.Info().
		Str("asset", asset).
		Str("network", network).
		Str("address", address).
		Str("amount", amount.String()).
		Str("withdrawal_id", id).
		Msg("Simulated exchange withdrawal")
	return id, nil
}
