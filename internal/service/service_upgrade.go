package service

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// upgradeService re-seals [models.SchemeLegacyCBC] items with
// [models.SchemeDerivedAEAD].
type upgradeService struct {
	userRepository store.UserRepository
	itemRepository store.ItemRepository
	codec          itemCodec
	classifier     store.ErrorClassificator

	logger *logger.Logger
}

// NewUpgradeService constructs an UpgradeService.
func NewUpgradeService(userRepository store.UserRepository, itemRepository store.ItemRepository, cipher crypto.Cipher, classifier store.ErrorClassificator, logger *logger.Logger) UpgradeService {
	return &upgradeService{
		userRepository: userRepository,
		itemRepository: itemRepository,
		codec:          itemCodec{cipher: cipher},
		classifier:     classifier,
		logger:         logger,
	}
}

// UpgradeLegacy implements [UpgradeService].
//
// Items that can not be opened, or were replaced between load and write, are
// skipped and counted. A transient database error aborts the pass and is
// returned together with the report so far; any other per-item error is
// skipped. Next is only set when the pass completes.
func (s *upgradeService) UpgradeLegacy(ctx context.Context, after models.UpgradeCursor, limit int) (models.UpgradeReport, error) {
	log := logger.FromContext(ctx)

	var report models.UpgradeReport

	legacy, err := s.itemRepository.ListByScheme(ctx, models.SchemeLegacyCBC, after, limit)
	if err != nil {
		return report, fmt.Errorf("load legacy items: %w", err)
	}
	report.Scanned = len(legacy)

	next := make(models.UpgradeCursor, len(after)+len(legacy))
	maps.Copy(next, after)
	for _, item := range legacy {
		next[item.Kind] = max(next[item.Kind], item.ID)
	}

	owners := make(map[int64]models.User)
	for _, item := range legacy {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		owner, ok := owners[item.UserID]
		if !ok {
			owner, err = s.userRepository.FindByID(ctx, item.UserID)
			if err != nil {
				if s.classifier.Classify(err) == store.Retryable {
					return report, err
				}
				log.Warn().Err(err).Str("func", "*upgradeService.UpgradeLegacy").Int64("user_id", item.UserID).Msg("owner lookup failed, item skipped")
				report.Skipped++
				continue
			}
			owners[item.UserID] = owner
		}

		plain, err := s.codec.open(owner, item)
		if err != nil {
			log.Warn().Err(err).Str("func", "*upgradeService.UpgradeLegacy").Int64("id", item.ID).Str("kind", string(item.Kind)).Msg("legacy item can not be opened, skipped")
			report.Skipped++
			continue
		}

		sealed, err := s.codec.sealWith(owner, plain, models.SchemeDerivedAEAD)
		if err != nil {
			log.Warn().Err(err).Str("func", "*upgradeService.UpgradeLegacy").Int64("id", item.ID).Msg("re-seal failed, item skipped")
			report.Skipped++
			continue
		}

		err = s.itemRepository.Upgrade(ctx, sealed, models.SchemeLegacyCBC)
		switch {
		case err == nil:
			report.Upgraded++
		case errors.Is(err, store.ErrItemNotFound):
			log.Debug().Str("func", "*upgradeService.UpgradeLegacy").Int64("id", item.ID).Msg("item changed concurrently, skipped")
			report.Skipped++
		case s.classifier.Classify(err) == store.Retryable:
			return report, err
		default:
			log.Warn().Err(err).Str("func", "*upgradeService.UpgradeLegacy").Int64("id", item.ID).Msg("upgrade write failed, item skipped")
			report.Skipped++
		}
	}

	report.Next = next
	return report, nil
}
