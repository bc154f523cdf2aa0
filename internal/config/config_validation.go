// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

var supportedDrivers = map[string]bool{
	"pgx":     true,
	"sqlite3": true,
	"mysql":   true,
}

// validate checks that the final merged [StructuredConfig] satisfies all
// server requirements before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if err := cfg.validateCipher(); err != nil {
		return err
	}

	if err := cfg.ValidateStorage(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and positive request timeout are required", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimitEnabled() && cfg.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit burst must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.LegacyUpgradeInterval <= 0 || cfg.Workers.LegacyUpgradeBatch <= 0 {
		return fmt.Errorf("%w: legacy upgrade interval and batch must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

// validateClient checks the subset of settings vaultctl relies on.
func (cfg *StructuredConfig) validateClient() error {
	if err := cfg.validateCipher(); err != nil {
		return err
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and positive request timeout are required", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) validateCipher() error {
	if cfg.Cipher.ArgonTime == 0 || cfg.Cipher.ArgonMemory == 0 || cfg.Cipher.ArgonThreads == 0 {
		return fmt.Errorf("%w: argon2id parameters must be positive", ErrInvalidCipherConfigs)
	}
	return nil
}

// ValidateStorage checks the database settings on their own, for tools that
// only need the store.
func (cfg *StructuredConfig) ValidateStorage() error {
	if !supportedDrivers[cfg.Storage.DB.Driver] {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: dsn is required", ErrInvalidStorageConfigs)
	}
	return nil
}
