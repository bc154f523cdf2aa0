package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

// LegacyUpgradeWorker periodically converts legacy items to the canonical
// scheme in batches.
type LegacyUpgradeWorker struct {
	upgrader service.UpgradeService
	interval time.Duration
	batch    int

	// cursor is the sweep position; nil starts from the first row.
	cursor models.UpgradeCursor

	logger *logger.Logger
}

func NewLegacyUpgradeWorker(upgrader service.UpgradeService, cfg config.Workers, logger *logger.Logger) *LegacyUpgradeWorker {
	return &LegacyUpgradeWorker{
		upgrader: upgrader,
		interval: cfg.LegacyUpgradeInterval,
		batch:    cfg.LegacyUpgradeBatch,
		logger:   logger,
	}
}

// Run executes a sweep right away and then once per interval. A sweep walks
// the legacy rows in batches, each batch starting after the last id seen by
// the previous one, so items that keep failing are visited once per sweep.
func (w *LegacyUpgradeWorker) Run(ctx context.Context) {
	log := w.logger.With().Str("worker", "legacy_upgrade").Logger()
	log.Info().Dur("interval", w.interval).Int("batch", w.batch).Msg("worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		for w.pass(ctx) {
			if ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// pass reports whether another pass should follow immediately.
func (w *LegacyUpgradeWorker) pass(ctx context.Context) bool {
	log := w.logger.With().Str("worker", "legacy_upgrade").Logger()

	report, err := w.upgrader.UpgradeLegacy(ctx, w.cursor, w.batch)
	if err != nil {
		if ctx.Err() == nil {
			log.Err(err).Interface("report", report).Msg("legacy upgrade pass failed")
		}
		return false
	}

	if report.Scanned > 0 {
		log.Info().
			Int("scanned", report.Scanned).
			Int("upgraded", report.Upgraded).
			Int("skipped", report.Skipped).
			Msg("legacy upgrade pass finished")
	}

	if report.Scanned < w.batch {
		w.cursor = nil
		return false
	}
	w.cursor = report.Next
	return true
}
