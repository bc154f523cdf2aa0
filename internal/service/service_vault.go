package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService implements the vault-level key path. Key material is read
// from the user passed in; every write is conditional on that key still
// being current in the store.
type vaultService struct {
	userRepository store.UserRepository
	itemRepository store.ItemRepository
	cipher         crypto.Cipher
	codec          itemCodec
	validator      validators.Validator
	now            func() time.Time

	logger *logger.Logger
}

// NewVaultService constructs a VaultService.
func NewVaultService(userRepository store.UserRepository, itemRepository store.ItemRepository, cipher crypto.Cipher, cfg config.Cipher, logger *logger.Logger) VaultService {
	return &vaultService{
		userRepository: userRepository,
		itemRepository: itemRepository,
		cipher:         cipher,
		codec:          itemCodec{cipher: cipher, encryptCardsAndPins: cfg.EncryptCardsAndPins},
		validator:      validators.NewItemValidator(),
		now:            func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		logger:         logger,
	}
}

func (s *vaultService) MintKey(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if user.HasVaultKey() {
		return ErrVaultKeyAlreadyMinted
	}

	vaultKey, err := s.cipher.MintVaultKey()
	if err != nil {
		log.Err(err).Str("func", "*vaultService.MintKey").Msg("failed to mint vault key")
		return fmt.Errorf("mint vault key: %w", err)
	}

	if err = s.userRepository.SetVaultKey(ctx, user.UserID, vaultKey); err != nil {
		log.Err(err).Str("func", "*vaultService.MintKey").Int64("user_id", user.UserID).Msg("failed to store vault key")
		return storeError(err)
	}

	log.Info().Str("func", "*vaultService.MintKey").Int64("user_id", user.UserID).Msg("vault key minted")
	return nil
}

func (s *vaultService) SealSnapshot(ctx context.Context, user models.User) (models.SnapshotReport, error) {
	log := logger.FromContext(ctx)

	var report models.SnapshotReport
	if !user.HasVaultKey() {
		return report, ErrVaultKeyNotMinted
	}

	sealed, err := s.itemRepository.ListAll(ctx, user.UserID)
	if err != nil {
		return report, storeError(err)
	}

	snapshot := models.VaultSnapshot{
		Version:  models.VaultSnapshotVersion,
		SealedAt: s.now(),
		Items:    make([]models.PlainItem, 0, len(sealed)),
	}
	for _, item := range sealed {
		plain, err := s.codec.open(user, item)
		if err != nil {
			if !errors.Is(err, ErrDecryptFailed) && !errors.Is(err, ErrUnknownScheme) {
				return report, err
			}
			log.Warn().Err(err).Str("func", "*vaultService.SealSnapshot").Int64("id", item.ID).Str("kind", string(item.Kind)).Msg("item left out of snapshot")
			report.Skipped = append(report.Skipped, models.ItemRef{Kind: item.Kind, ID: item.ID})
			continue
		}
		snapshot.Items = append(snapshot.Items, plain)
	}

	vaultJSON, err := json.Marshal(snapshot)
	if err != nil {
		return report, fmt.Errorf("marshal snapshot: %w", err)
	}

	blob, err := s.cipher.SealVault(string(vaultJSON), user.VaultKey)
	if err != nil {
		return report, fmt.Errorf("seal snapshot: %w", err)
	}

	if err = s.userRepository.SaveVaultBlob(ctx, user.UserID, user.VaultKey, blob); err != nil {
		log.Err(err).Str("func", "*vaultService.SealSnapshot").Int64("user_id", user.UserID).Msg("failed to store snapshot")
		return report, storeError(err)
	}

	report.Sealed = len(snapshot.Items)
	return report, nil
}

func (s *vaultService) OpenSnapshot(ctx context.Context, user models.User) (models.VaultSnapshot, error) {
	log := logger.FromContext(ctx)

	if !user.HasVaultKey() {
		return models.VaultSnapshot{}, ErrVaultKeyNotMinted
	}
	if user.VaultBlob == "" {
		return models.VaultSnapshot{}, ErrNoSnapshot
	}

	vaultJSON, err := s.cipher.OpenVault(user.VaultBlob, user.VaultKey)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.OpenSnapshot").Int64("user_id", user.UserID).Msg("failed to open snapshot")
		return models.VaultSnapshot{}, fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
	}

	var snapshot models.VaultSnapshot
	if err = json.Unmarshal([]byte(vaultJSON), &snapshot); err != nil {
		return models.VaultSnapshot{}, fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
	}

	return snapshot, nil
}

// ImportSnapshot creates new items from the snapshot; existing items are not
// touched, so importing twice duplicates them.
func (s *vaultService) ImportSnapshot(ctx context.Context, user models.User) (int, error) {
	log := logger.FromContext(ctx)

	snapshot, err := s.OpenSnapshot(ctx, user)
	if err != nil {
		return 0, err
	}

	if err = s.validator.Validate(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sealed := make([]models.SealedItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		item.ID = 0
		sealedItem, err := s.codec.seal(user, item)
		if err != nil {
			return 0, err
		}
		sealed = append(sealed, sealedItem)
	}

	created, err := s.itemRepository.CreateBatch(ctx, sealed)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.ImportSnapshot").Int64("user_id", user.UserID).Msg("import failed")
		return 0, storeError(err)
	}

	return len(created), nil
}

func (s *vaultService) RotateKey(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if !user.HasVaultKey() {
		return ErrVaultKeyNotMinted
	}

	newKey, err := s.cipher.MintVaultKey()
	if err != nil {
		return fmt.Errorf("mint vault key: %w", err)
	}

	var blob string
	if user.VaultBlob != "" {
		vaultJSON, err := s.cipher.OpenVault(user.VaultBlob, user.VaultKey)
		if err != nil {
			if errors.Is(err, crypto.ErrDecryption) {
				return fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
			}
			return err
		}
		if blob, err = s.cipher.SealVault(vaultJSON, newKey); err != nil {
			return fmt.Errorf("re-seal snapshot: %w", err)
		}
	}

	if err = s.userRepository.RotateVault(ctx, user.UserID, user.VaultKey, newKey, blob); err != nil {
		log.Err(err).Str("func", "*vaultService.RotateKey").Int64("user_id", user.UserID).Msg("failed to rotate vault key")
		return storeError(err)
	}

	log.Info().Str("func", "*vaultService.RotateKey").Int64("user_id", user.UserID).Msg("vault key rotated")
	return nil
}
