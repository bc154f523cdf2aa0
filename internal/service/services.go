package service

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type Services struct {
	IdentityService IdentityService
	ItemService     ItemService
	VaultService    VaultService
	UpgradeService  UpgradeService
	AppInfoService  AppInfoService
}

func NewServices(repositories *store.Repositories, cipher crypto.Cipher, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	itemService := NewItemService(repositories.ItemRepository, cipher, cfg.Cipher, logger)

	return &Services{
		IdentityService: NewIdentityService(repositories.UserRepository, cfg.App, logger),
		ItemService:     NewItemValidationService().Wrap(itemService),
		VaultService:    NewVaultService(repositories.UserRepository, repositories.ItemRepository, cipher, cfg.Cipher, logger),
		UpgradeService:  NewUpgradeService(repositories.UserRepository, repositories.ItemRepository, cipher, store.NewErrorClassifier(), logger),
		AppInfoService:  appInfoService,
	}, nil
}

// NewCipher builds the cipher from the configured Argon2id parameters.
func NewCipher(cfg config.Cipher) (crypto.Cipher, error) {
	return crypto.NewCipher(crypto.Argon2Params{
		Time:    cfg.ArgonTime,
		Memory:  cfg.ArgonMemory,
		Threads: cfg.ArgonThreads,
	})
}
