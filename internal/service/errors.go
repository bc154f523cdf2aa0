package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrIdentityUnavailable     = errors.New("identity is unavailable")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrItemNotFound        = errors.New("item not found")
	ErrUnknownScheme       = errors.New("unknown key scheme")
	ErrDecryptFailed       = errors.New("unable to decrypt this item")

	ErrVaultKeyAlreadyMinted = errors.New("vault key already minted")
	ErrVaultKeyNotMinted     = errors.New("vault key is not minted")
	ErrNoSnapshot            = errors.New("no vault snapshot was sealed")
	ErrVaultChanged          = errors.New("vault key changed concurrently")
	ErrSnapshotCorrupted     = errors.New("vault snapshot can not be opened")
)
