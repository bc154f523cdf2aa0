package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/models"
)

// itemCodec converts between plaintext and sealed items. It is the only
// place that dispatches on [models.KeyScheme].
type itemCodec struct {
	cipher              crypto.Cipher
	encryptCardsAndPins bool
}

// schemeFor returns the scheme newly written items of kind are tagged with.
func (c itemCodec) schemeFor(kind models.ItemKind) models.KeyScheme {
	if kind.Spec().AlwaysEncrypted || c.encryptCardsAndPins {
		return models.SchemeDerivedAEAD
	}
	return models.SchemePlain
}

// seal writes item with the scheme configured for its kind.
func (c itemCodec) seal(user models.User, item models.PlainItem) (models.SealedItem, error) {
	return c.sealWith(user, item, c.schemeFor(item.Kind))
}

// sealWith writes every field of the kind, absent ones as empty strings.
// Only [models.SchemePlain] and [models.SchemeDerivedAEAD] can be written.
func (c itemCodec) sealWith(user models.User, item models.PlainItem, scheme models.KeyScheme) (models.SealedItem, error) {
	spec := item.Kind.Spec()
	sealed := models.SealedItem{
		ID:     item.ID,
		UserID: user.UserID,
		Kind:   item.Kind,
		Scheme: scheme,
		Fields: make(map[string]models.CipheredData, len(spec.Fields)),
	}

	switch scheme {
	case models.SchemePlain:
		for _, f := range spec.Fields {
			sealed.Fields[f] = models.CipheredData(item.Fields[f])
		}
	case models.SchemeDerivedAEAD:
		identity := user.Identity()
		key, err := c.cipher.DeriveKey(&identity)
		if err != nil {
			return models.SealedItem{}, keyError(err)
		}
		for _, f := range spec.Fields {
			envelope, err := c.cipher.Seal(item.Fields[f], key)
			if err != nil {
				return models.SealedItem{}, fmt.Errorf("seal field %q: %w", f, err)
			}
			sealed.Fields[f] = models.CipheredData(envelope)
		}
	default:
		return models.SealedItem{}, fmt.Errorf("%w: %s can not be written", ErrUnknownScheme, scheme)
	}

	return sealed, nil
}

// open reads item according to its scheme tag. Any field that fails to
// open fails the whole item with an error wrapping [ErrDecryptFailed].
func (c itemCodec) open(user models.User, item models.SealedItem) (models.PlainItem, error) {
	spec := item.Kind.Spec()
	plain := models.PlainItem{
		ID:        item.ID,
		Kind:      item.Kind,
		Fields:    make(map[string]string, len(spec.Fields)),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	var openField func(value string) (string, error)

	identity := user.Identity()
	switch item.Scheme {
	case models.SchemePlain:
		openField = func(value string) (string, error) { return value, nil }
	case models.SchemeDerivedAEAD:
		key, err := c.cipher.DeriveKey(&identity)
		if err != nil {
			return models.PlainItem{}, keyError(err)
		}
		openField = func(value string) (string, error) { return c.cipher.Open(value, key) }
	case models.SchemeLegacyCBC:
		key, err := c.cipher.DeriveLegacyKey(&identity)
		if err != nil {
			return models.PlainItem{}, keyError(err)
		}
		// the previous writer left empty values unencrypted
		openField = func(value string) (string, error) {
			if value == "" {
				return "", nil
			}
			return c.cipher.OpenLegacy(value, key)
		}
	default:
		return models.PlainItem{}, fmt.Errorf("%w: %s", ErrUnknownScheme, item.Scheme)
	}

	for _, f := range spec.Fields {
		value, err := openField(string(item.Fields[f]))
		if err != nil {
			return models.PlainItem{}, fmt.Errorf("%w: field %q: %w", ErrDecryptFailed, f, err)
		}
		plain.Fields[f] = value
	}

	return plain, nil
}

func keyError(err error) error {
	if errors.Is(err, crypto.ErrIdentityUnavailable) {
		return fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}
	return fmt.Errorf("derive key: %w", err)
}

// normalized returns the fields of item the way open reads them back:
// every field of the kind, absent ones as "".
func normalized(item models.PlainItem) map[string]string {
	spec := item.Kind.Spec()
	fields := make(map[string]string, len(spec.Fields))
	for _, f := range spec.Fields {
		fields[f] = item.Fields[f]
	}
	return fields
}

// undecryptable is the list entry of an item that failed to open.
func undecryptable(item models.SealedItem) models.PlainItem {
	return models.PlainItem{
		ID:            item.ID,
		Kind:          item.Kind,
		Fields:        map[string]string{},
		DecryptFailed: true,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
