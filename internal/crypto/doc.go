// Package crypto implements the per-user symmetric encryption scheme that
// protects vault item fields at rest.
//
// Field values are sealed into AES-256-GCM envelopes keyed by a string derived
// from the owner's identity ([DeriveKey]). A secondary path seals a JSON
// snapshot of the whole vault under a random per-account key
// ([Cipher.MintVaultKey]). Data written by the previous implementation can be
// read with [Cipher.OpenLegacy] and is never written again.
package crypto
