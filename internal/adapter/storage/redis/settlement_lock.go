package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/google/uuid"
)

// releaseScript deletes the lease key only when the caller still owns it, so
// an expired-and-reacquired lease is never released by the old holder.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SettlementLock implements ports.SettlementLocker using Redis SET NX. It is
// the single-flight guard for settlement runs: one lease per asset.
type SettlementLock struct {
	client *goredis.Client
	prefix string
}

// NewSettlementLock creates a new Redis-backed settlement lease.
func NewSettlementLock(client *goredis.Client) *SettlementLock {
	return &SettlementLock{
		client: client,
		prefix: "settlement:lease:",
	}
}

// Acquire tries to take the lease for an asset. It returns an ownership
// token and whether the lease was acquired; a held lease is not an error.
func (l *SettlementLock) Acquire(ctx context.Context, asset string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+asset, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis settlement lease acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release gives the lease back. Only the holder of token releases anything;
// a stale token is a silent no-op.
func (l *SettlementLock) Release(ctx context.Context, asset, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + asset}, token).Err(); err != nil {
		return fmt.Errorf("redis settlement lease release: %w", err)
	}
	return nil
}
