package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// itemService seals plaintext items on write and opens them on read.
type itemService struct {
	itemRepository store.ItemRepository
	codec          itemCodec

	logger *logger.Logger
}

// NewItemService constructs an ItemService. Card and pin fields are sealed
// only when cfg.EncryptCardsAndPins is set.
func NewItemService(itemRepository store.ItemRepository, cipher crypto.Cipher, cfg config.Cipher, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		codec:          itemCodec{cipher: cipher, encryptCardsAndPins: cfg.EncryptCardsAndPins},
		logger:         logger,
	}
}

func (s *itemService) Create(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.codec.seal(user, item)
	if err != nil {
		log.Err(err).Str("func", "*itemService.Create").Str("kind", string(item.Kind)).Msg("failed to seal item")
		return models.PlainItem{}, err
	}

	saved, err := s.itemRepository.Create(ctx, sealed)
	if err != nil {
		log.Err(err).Str("func", "*itemService.Create").Str("kind", string(item.Kind)).Msg("failed to save item")
		return models.PlainItem{}, storeError(err)
	}

	item.ID = saved.ID
	item.Fields = normalized(item)
	item.CreatedAt = saved.CreatedAt
	item.UpdatedAt = nil
	return item, nil
}

func (s *itemService) Get(ctx context.Context, user models.User, kind models.ItemKind, id int64) (models.PlainItem, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.itemRepository.Get(ctx, user.UserID, kind, id)
	if err != nil {
		return models.PlainItem{}, storeError(err)
	}

	plain, err := s.codec.open(user, sealed)
	if err != nil {
		log.Warn().Err(err).Str("func", "*itemService.Get").Int64("id", id).Str("scheme", sealed.Scheme.String()).Msg("failed to open item")
		return models.PlainItem{}, err
	}

	return plain, nil
}

func (s *itemService) List(ctx context.Context, user models.User, kind models.ItemKind) ([]models.PlainItem, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.itemRepository.List(ctx, user.UserID, kind)
	if err != nil {
		return nil, storeError(err)
	}

	items := make([]models.PlainItem, 0, len(sealed))
	for _, item := range sealed {
		plain, err := s.codec.open(user, item)
		if err != nil {
			log.Warn().Err(err).Str("func", "*itemService.List").Int64("id", item.ID).Str("scheme", item.Scheme.String()).Msg("failed to open item")
			items = append(items, undecryptable(item))
			continue
		}
		items = append(items, plain)
	}

	return items, nil
}

// Replace writes all fields of item anew with the scheme currently
// configured for its kind, which also moves legacy items to it.
func (s *itemService) Replace(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error) {
	log := logger.FromContext(ctx)

	sealed, err := s.codec.seal(user, item)
	if err != nil {
		log.Err(err).Str("func", "*itemService.Replace").Int64("id", item.ID).Msg("failed to seal item")
		return models.PlainItem{}, err
	}

	if err = s.itemRepository.Replace(ctx, sealed); err != nil {
		return models.PlainItem{}, storeError(err)
	}

	stored, err := s.itemRepository.Get(ctx, user.UserID, item.Kind, item.ID)
	if err != nil {
		return models.PlainItem{}, storeError(err)
	}

	item.Fields = normalized(item)
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = stored.UpdatedAt
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, user models.User, kind models.ItemKind, id int64) error {
	if err := s.itemRepository.Delete(ctx, user.UserID, kind, id); err != nil {
		return storeError(err)
	}
	return nil
}

// storeError maps repository sentinels onto service sentinels.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return ErrItemNotFound
	case errors.Is(err, store.ErrUnknownKind), errors.Is(err, store.ErrItemNotSaved):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrIdentityUnavailable
	case errors.Is(err, store.ErrVaultKeyAlreadyMinted):
		return ErrVaultKeyAlreadyMinted
	case errors.Is(err, store.ErrVaultKeyMismatch):
		return ErrVaultChanged
	default:
		return err
	}
}
