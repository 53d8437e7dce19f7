package service

import (
	"context"
	"errors"
	"time"

	"treasury-core/internal/core/ports"
	"treasury-core/pkg/apperror"

	"github.com/rs/zerolog"
)

// InvoiceExpirySweeper periodically expires active invoices whose due date
// has passed. Each sweep re-queries at offset zero because expiring an
// invoice removes it from the active-but-expired set.
type InvoiceExpirySweeper struct {
	invoices ports.InvoiceTracker
	interval time.Duration
	pageSize int
	log      zerolog.Logger
}

// NewInvoiceExpirySweeper creates a new InvoiceExpirySweeper.
func NewInvoiceExpirySweeper(invoices ports.InvoiceTracker, interval time.Duration, pageSize int, log zerolog.Logger) *InvoiceExpirySweeper {
	return &InvoiceExpirySweeper{
		invoices: invoices,
		interval: interval,
		pageSize: pageSize,
		log:      log,
	}
}

// Run sweeps on a ticker until the context is canceled.
func (s *InvoiceExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("invoice expiry sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("invoice expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep expires every active invoice past its due date. Individual failures
// are logged and skipped; one stuck invoice must not block the rest.
func (s *InvoiceExpirySweeper) Sweep(ctx context.Context) {
	asOf := time.Now().UTC()
	expired := 0

	for {
		invoices, _, err := s.invoices.ListActiveButExpired(ctx, asOf, ports.Page{Limit: s.pageSize, Offset: 0})
		if err != nil {
			s.log.Error().Err(err).Msg("listing expired invoices failed")
			return
		}
		if len(invoices) == 0 {
			break
		}

		progressed := false
		for _, invoice := range invoices {
			if err := s.invoices.ExpireInvoice(ctx, invoice.ID, asOf); err != nil {
				s.log.Warn().
					Err(err).
					Str("invoice_id", invoice.ID.String()).
					Msg("expiring invoice failed")
				continue
			}
			expired++
			progressed = true
		}
		// Every remaining candidate failed; retry on the next sweep instead
		// of spinning on the same page.
		if !progressed {
			break
		}
	}

	if expired > 0 {
		s.log.Info().Int("expired", expired).Msg("invoice expiry sweep finished")
	}
}

// SettlementScheduler periodically runs settlement for each configured
// asset. A lease already held elsewhere is a normal outcome, logged at
// debug.
type SettlementScheduler struct {
	engine   ports.SettlementEngine
	assets   []string
	interval time.Duration
	log      zerolog.Logger
}

// NewSettlementScheduler creates a new SettlementScheduler.
func NewSettlementScheduler(engine ports.SettlementEngine, assets []string, interval time.Duration, log zerolog.Logger) *SettlementScheduler {
	return &SettlementScheduler{
		engine:   engine,
		assets:   assets,
		interval: interval,
		log:      log,
	}
}

// Run settles on a ticker until the context is canceled.
func (s *SettlementScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Strs("assets", s.assets).Msg("settlement scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("settlement scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs settlement for every configured asset, isolating failures.
func (s *SettlementScheduler) RunOnce(ctx context.Context) {
	for _, asset := range s.assets {
		results, err := s.engine.ExecuteSettlement(ctx, asset)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == "SET_001" {
				s.log.Debug().Str("asset", asset).Msg("settlement already in progress, skipping")
				continue
			}
			s.log.Error().Err(err).Str("asset", asset).Msg("scheduled settlement failed")
			continue
		}

		for _, r := range results {
			if !r.Success {
				s.log.Warn().
					Str("asset", r.Asset).
					Str("blockchain_key", r.BlockchainKey).
					Str("error", r.Error).
					Msg("settlement transfer did not complete")
			}
		}
	}
}
