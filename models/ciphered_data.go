package models

// CipheredData is an opaque envelope string stored in place of a plaintext
// field. The database never interprets it.
type CipheredData string
