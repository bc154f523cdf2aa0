package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("get item: %w", service.ErrItemNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "item not found",
		},
		{
			name:        "decrypt failure hides the cause",
			err:         fmt.Errorf("%w: field %q: %w", service.ErrDecryptFailed, "password", errors.New("bad tag")),
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "unable to decrypt this item",
		},
		{
			name:        "identity wins over decrypt failure",
			err:         errors.Join(service.ErrDecryptFailed, service.ErrIdentityUnavailable),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "identity is unavailable",
		},
		{
			name:        "vault changed",
			err:         service.ErrVaultChanged,
			wantStatus:  http.StatusConflict,
			wantMessage: "vault key changed concurrently",
		},
		{
			name:        "unknown error",
			err:         errors.New("dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err))
		})
	}
}
