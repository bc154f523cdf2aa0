package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

type errorStatus struct {
	err    error
	status int

	// message replaces err.Error() in responses when set.
	message string
}

// errorStatuses maps errors to response statuses, first match wins. Messages
// of mapped errors are safe to show to users; everything else is answered
// with a generic message and 500.
var errorStatuses = []errorStatus{
	{err: ErrUnknownKind, status: http.StatusNotFound},
	{err: ErrInvalidItemID, status: http.StatusBadRequest},
	{err: ErrInvalidJSON, status: http.StatusBadRequest},
	{err: ErrNoUserInContext, status: http.StatusUnauthorized},

	{err: service.ErrIdentityUnavailable, status: http.StatusUnauthorized},
	{err: service.ErrTokenIsExpiredOrInvalid, status: http.StatusUnauthorized},
	{err: service.ErrInvalidDataProvided, status: http.StatusBadRequest},
	{err: service.ErrDecryptFailed, status: http.StatusUnprocessableEntity, message: "unable to decrypt this item"},
	{err: service.ErrUnknownScheme, status: http.StatusUnprocessableEntity, message: "unable to decrypt this item"},
	{err: service.ErrSnapshotCorrupted, status: http.StatusUnprocessableEntity, message: "unable to decrypt the vault snapshot"},
	{err: service.ErrItemNotFound, status: http.StatusNotFound},
	{err: service.ErrNoSnapshot, status: http.StatusNotFound},
	{err: service.ErrVaultKeyAlreadyMinted, status: http.StatusConflict},
	{err: service.ErrVaultKeyNotMinted, status: http.StatusConflict},
	{err: service.ErrVaultChanged, status: http.StatusConflict},
}

func lookupError(err error) (errorStatus, bool) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e, true
		}
	}
	return errorStatus{}, false
}

func statusFromError(err error) int {
	if e, ok := lookupError(err); ok {
		return e.status
	}
	return http.StatusInternalServerError
}

// messageFromError returns the user facing message of err.
func messageFromError(err error) string {
	e, ok := lookupError(err)
	switch {
	case !ok:
		return http.StatusText(http.StatusInternalServerError)
	case e.message != "":
		return e.message
	default:
		return e.err.Error()
	}
}
