// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks plaintext vault input before it reaches the
// cipher: item kinds, the field set of each kind, required values and value
// encoding. Snapshots opened with the vault key are validated the same way
// before their items are imported.
package validators

import "context"

// Validator validates arbitrary input values, optionally restricted to the
// named checks.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
