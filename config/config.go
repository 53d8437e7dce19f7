package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Treasury   TreasuryConfig   `mapstructure:"treasury"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Log        LogConfig        `mapstructure:"log"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TreasuryConfig covers ledger-side limits and the invoice expiry sweep.
// Amounts are decimal strings in token base units.
type TreasuryConfig struct {
	DailyWithdrawalLimit string            `mapstructure:"daily_withdrawal_limit"`
	DailyLimitOverrides  map[string]string `mapstructure:"daily_limit_overrides"` // token id -> limit
	InvoiceSweepInterval time.Duration     `mapstructure:"invoice_sweep_interval"`
	InvoiceSweepPageSize int               `mapstructure:"invoice_sweep_page_size"`
}

// LimitFor returns the daily withdrawal limit for a token, falling back to
// the global default when no override exists.
func (t TreasuryConfig) LimitFor(tokenID string) string {
	if limit, ok := t.DailyLimitOverrides[tokenID]; ok {
		return limit
	}
	return t.DailyWithdrawalLimit
}

// SettlementConfig drives the rebalancing engine. Ratio is the target share
// of the combined (hot + exchange) balance held at the exchange.
type SettlementConfig struct {
	Ratio            string            `mapstructure:"ratio"`        // e.g. "0.5"
	DustMinimum      string            `mapstructure:"dust_minimum"` // per-transfer minimum, base units
	ChainCallTimeout time.Duration     `mapstructure:"chain_call_timeout"`
	Interval         time.Duration     `mapstructure:"interval"`
	LeaseTTL         time.Duration     `mapstructure:"lease_ttl"`
	Assets           []string          `mapstructure:"assets"`
	HotWallets       map[string]string `mapstructure:"hot_wallets"` // blockchain key -> address
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TRS_ (Treasury).
// Nested keys use underscore: TRS_DATABASE_HOST, TRS_SETTLEMENT_RATIO, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "treasury")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("treasury.daily_withdrawal_limit", "10000000000")
	v.SetDefault("treasury.invoice_sweep_interval", "5m")
	v.SetDefault("treasury.invoice_sweep_page_size", 100)
	v.SetDefault("settlement.ratio", "0.5")
	v.SetDefault("settlement.dust_minimum", "1000000")
	v.SetDefault("settlement.chain_call_timeout", "15s")
	v.SetDefault("settlement.interval", "1h")
	v.SetDefault("settlement.lease_ttl", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TRS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
