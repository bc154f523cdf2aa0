// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// legacyEncryptCardsEnv is the switch name used by earlier deployments.
const legacyEncryptCardsEnv = "APP_ENCRYPT_CARDS_AND_PINS"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg *StructuredConfig) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if v, ok := os.LookupEnv(legacyEncryptCardsEnv); ok && !cfg.Cipher.EncryptCardsAndPins {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("error getting env configs: %s: %w", legacyEncryptCardsEnv, err)
		}
		cfg.Cipher.EncryptCardsAndPins = enabled
	}

	return nil
}
