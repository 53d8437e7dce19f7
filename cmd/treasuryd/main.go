package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"treasury-core/config"
	"treasury-core/internal/adapter/chain"
	pgStorage "treasury-core/internal/adapter/storage/postgres"
	redisStorage "treasury-core/internal/adapter/storage/redis"
	"treasury-core/internal/core/ports"
	"treasury-core/internal/service"
	"treasury-core/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("settlement_ratio", cfg.Settlement.Ratio).
		Strs("settlement_assets", cfg.Settlement.Assets).
		Msg("Starting treasury daemon")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories. The daemon only drives the background loops;
	// withdrawal and beneficiary flows are invoked through the service layer
	// by the surface above this binary.
	accountRepo := pgStorage.NewAccountRepo(pool)
	mutationRepo := pgStorage.NewMutationRepo(pool)
	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize settlement lease
	settlementLock := redisStorage.NewSettlementLock(rdb)

	// Initialize core services
	ledgerSvc := service.NewLedgerService(accountRepo, mutationRepo, transactor, log)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, ledgerSvc, transactor, log)

	// Wallet and exchange clients. Stubs simulate chain traffic until the
	// real integrations are configured in.
	wallets := make(map[string]ports.WalletClient, len(cfg.Settlement.HotWallets))
	for blockchainKey, address := range cfg.Settlement.HotWallets {
		wallets[blockchainKey] = chain.NewStubWalletClient(
			blockchainKey,
			map[string]decimal.Decimal{address: decimal.Zero},
			log,
		)
	}
	exchangeClient := chain.NewStubExchangeClient(nil, log)

	// Initialize the settlement engine
	assetMapper := service.NewAssetMapper(service.DefaultAssetMappings(), service.DefaultChainNetworks())
	balanceSource := service.NewBalanceAggregator(
		wallets, cfg.Settlement.HotWallets, cfg.Settlement.ChainCallTimeout, log,
	)
	settlementSvc := service.NewSettlementService(
		assetMapper, balanceSource, wallets, exchangeClient, settlementLock, cfg.Settlement, log,
	)

	// Health checkers
	checkers := []ports.HealthChecker{
		pgStorage.NewHealthCheck(pool),
		redisStorage.NewHealthCheck(rdb),
	}
	for _, c := range checkers {
		if err := c.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("dependency", c.Name()).Msg("Dependency health check failed")
		}
	}

	// Background loops
	sweeper := service.NewInvoiceExpirySweeper(
		invoiceSvc, cfg.Treasury.InvoiceSweepInterval, cfg.Treasury.InvoiceSweepPageSize, log,
	)
	go sweeper.Run(ctx)
	log.Info().Dur("interval", cfg.Treasury.InvoiceSweepInterval).Msg("Invoice expiry sweeper started")

	if len(cfg.Settlement.Assets) > 0 {
		scheduler := service.NewSettlementScheduler(
			settlementSvc, cfg.Settlement.Assets, cfg.Settlement.Interval, log,
		)
		go scheduler.Run(ctx)
		log.Info().Dur("interval", cfg.Settlement.Interval).Msg("Settlement scheduler started")
	} else {
		log.Warn().Msg("No settlement assets configured, scheduler not started")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down...")

	cancel()
	log.Info().Msg("Treasury daemon exited")
}
