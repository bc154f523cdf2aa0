package models

// ItemRequest is the body of create and replace requests.
type ItemRequest struct {
	// Fields maps field names of the item kind to plaintext values.
	Fields map[string]string `json:"fields"`
}

// ItemListResponse is returned by the list endpoint.
type ItemListResponse struct {
	// Items holds the decrypted items. Items that failed to decrypt are
	// included with DecryptFailed set.
	Items []PlainItem `json:"items"`

	// Length is the number of entries in Items.
	Length int `json:"length"`
}

// SnapshotResponse is returned after a snapshot was sealed.
type SnapshotResponse struct {
	// Items is the number of items captured by the snapshot.
	Items int `json:"items"`

	// Skipped lists items left out because they could not be decrypted.
	Skipped []ItemRef `json:"skipped,omitempty"`
}

// ImportResponse is returned after a snapshot was imported into the
// per-field scheme.
type ImportResponse struct {
	// Imported is the number of items created.
	Imported int `json:"imported"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	// Error is a human readable message safe to show to users.
	Error string `json:"error"`
}
