package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WalletClient is the injected per-blockchain wallet/RPC surface. Signing and
// broadcast happen behind this interface.
type WalletClient interface {
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (string, error)
}

// ExchangeClient is the injected centralized-exchange custody surface.
type ExchangeClient interface {
	GetDepositAddress(ctx context.Context, asset, network string) (string, error)
	Withdraw(ctx context.Context, asset, network, address string, amount decimal.Decimal) (string, error)
	GetBalance(ctx context.Context, asset string) (decimal.Decimal, error)
}

// SettlementLocker is a single-flight lease per asset. Acquire returns an
// ownership token; Release only succeeds for the holder of that token.
type SettlementLocker interface {
	Acquire(ctx context.Context, asset string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, asset, token string) error
}
