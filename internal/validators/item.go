// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field name constants used to restrict validation to a subset of checks.
const (
	// FieldKind checks that the item kind is known.
	FieldKind = "kind"

	// FieldNames checks that every field name belongs to the kind.
	FieldNames = "names"

	// FieldRequired checks that the required fields of the kind are set.
	FieldRequired = "required"

	// FieldValues checks value encoding and size.
	FieldValues = "values"

	// FieldSnapshotVersion checks the version of a vault snapshot.
	FieldSnapshotVersion = "snapshot_version"

	// FieldSnapshotItems validates every item of a vault snapshot.
	FieldSnapshotItems = "snapshot_items"
)

// MaxFieldLength is the longest accepted plaintext value in bytes.
const MaxFieldLength = 64 * 1024

// ItemValidator implements [Validator] for plaintext vault items and vault
// snapshots.
type ItemValidator struct{}

// NewItemValidator constructs a new ItemValidator and returns it as the
// Validator interface.
func NewItemValidator() Validator {
	return &ItemValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.PlainItem / *models.PlainItem
//   - models.VaultSnapshot / *models.VaultSnapshot
//
// Returns ErrUnsupportedType for anything else.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PlainItem:
		return v.validateItem(ctx, value, fields...)
	case *models.PlainItem:
		return v.validateItem(ctx, *value, fields...)

	case models.VaultSnapshot:
		return v.validateSnapshot(ctx, value, fields...)
	case *models.VaultSnapshot:
		return v.validateSnapshot(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateItem validates a plaintext item before it is sealed.
//
// Default validated fields: Kind, Names, Required, Values.
func (v *ItemValidator) validateItem(ctx context.Context, item models.PlainItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldNames, FieldRequired, FieldValues}
	}

	spec := item.Kind.Spec()

	for _, f := range fields {
		switch f {
		case FieldKind:
			if spec.Table == "" {
				return fmt.Errorf("%w: %q", ErrInvalidKind, item.Kind)
			}
		case FieldNames:
			if len(item.Fields) == 0 {
				return ErrNoFieldsProvided
			}
			for name := range item.Fields {
				if !slices.Contains(spec.Fields, name) {
					return fmt.Errorf("%w: %q", ErrUnexpectedField, name)
				}
			}
		case FieldRequired:
			for _, name := range spec.Required {
				if item.Fields[name] == "" {
					return fmt.Errorf("%w: %q", ErrMissingField, name)
				}
			}
		case FieldValues:
			for name, value := range item.Fields {
				if len(value) > MaxFieldLength {
					return fmt.Errorf("%w: %q", ErrFieldTooLong, name)
				}
				if !utf8.ValidString(value) {
					return fmt.Errorf("%w: %q", ErrFieldNotUTF8, name)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSnapshot validates an opened vault snapshot before its items are
// imported.
//
// Default validated fields: SnapshotVersion, SnapshotItems.
//
// Returns a wrapped error indicating the index of the first invalid item.
func (v *ItemValidator) validateSnapshot(ctx context.Context, snapshot models.VaultSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSnapshotVersion, FieldSnapshotItems}
	}

	for _, f := range fields {
		switch f {
		case FieldSnapshotVersion:
			if snapshot.Version != models.VaultSnapshotVersion {
				return fmt.Errorf("%w: %d", ErrUnsupportedFormat, snapshot.Version)
			}
		case FieldSnapshotItems:
			for idx, item := range snapshot.Items {
				if err := v.validateItem(ctx, item, FieldKind, FieldNames, FieldValues); err != nil {
					return fmt.Errorf("%w: item at index %d: %w", ErrInvalidSnapshot, idx, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
