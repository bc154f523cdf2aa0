// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/models"
)

// keyDelimiter separates the components of a derived key string.
const keyDelimiter = "|"

// legacyTimestampLayout reproduces the default date string of the previous
// implementation for a UTC runtime, e.g.
// "Mon Jan 15 2024 10:30:00 GMT+0000 (Coordinated Universal Time)".
const legacyTimestampLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (Coordinated Universal Time)"

// DeriveKey computes the per-user key string for identity.
//
// The result joins, with "|", in this order: the raw id, the creation
// timestamp in RFC 3339 UTC, its epoch milliseconds, the code point of the
// last rune of the id, the UTC day of month, the code point of the first rune,
// the four-digit UTC year, the code point of the second rune, the UTC hour,
// the rune count of the id and the UTC minute.
//
// The timestamp is truncated to whole seconds and converted to UTC before use,
// so the output depends on nothing but the identity. Changing any of the above
// makes every previously sealed field unreadable.
//
// Errors:
//   - nil identity, empty id or zero timestamp: [ErrIdentityUnavailable];
//   - id with fewer than two runes or invalid UTF-8: [ErrKeyDerivation].
//
// On error the returned key is always the empty string.
func DeriveKey(identity *models.Identity) (string, error) {
	return deriveKey(identity, func(t time.Time) string {
		return t.Format(time.RFC3339)
	})
}

// DeriveLegacyKey is [DeriveKey] with the timestamp component rendered in the
// previous implementation's default date format. The character components
// and the length count UTF-16 code units instead of runes, so ids outside the
// Basic Multilingual Plane yield the key the previous writer used. It exists
// only to read items tagged [models.SchemeLegacyCBC].
func DeriveLegacyKey(identity *models.Identity) (string, error) {
	return deriveKeyWith(identity, func(t time.Time) string {
		return t.Format(legacyTimestampLayout)
	}, utf16Units)
}

func deriveKey(identity *models.Identity, formatTimestamp func(time.Time) string) (string, error) {
	return deriveKeyWith(identity, formatTimestamp, runeUnits)
}

func runeUnits(id string) []rune { return []rune(id) }

// utf16Units returns surrogate pairs as two units.
func utf16Units(id string) []rune {
	encoded := utf16.Encode([]rune(id))
	units := make([]rune, len(encoded))
	for i, u := range encoded {
		units[i] = rune(u)
	}
	return units
}

func deriveKeyWith(identity *models.Identity, formatTimestamp func(time.Time) string, split func(string) []rune) (string, error) {
	if identity == nil || identity.ID == "" || identity.CreatedAt.IsZero() {
		return "", ErrIdentityUnavailable
	}
	if !utf8.ValidString(identity.ID) {
		return "", fmt.Errorf("%w: id is not valid UTF-8", ErrKeyDerivation)
	}

	runes := split(identity.ID)
	if len(runes) < 2 {
		return "", fmt.Errorf("%w: id must have at least 2 characters, got %d", ErrKeyDerivation, len(runes))
	}

	ts := identity.CreatedAt.UTC().Truncate(time.Second)

	parts := []string{
		identity.ID,
		formatTimestamp(ts),
		strconv.FormatInt(ts.UnixMilli(), 10),
		strconv.Itoa(int(runes[len(runes)-1])),
		strconv.Itoa(ts.Day()),
		strconv.Itoa(int(runes[0])),
		fmt.Sprintf("%04d", ts.Year()),
		strconv.Itoa(int(runes[1])),
		strconv.Itoa(ts.Hour()),
		strconv.Itoa(len(runes)),
		strconv.Itoa(ts.Minute()),
	}

	return strings.Join(parts, keyDelimiter), nil
}
