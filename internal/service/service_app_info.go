package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// appInfoService reports the build the server runs. The version is fixed at
// construction.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService fails with [ErrVersionIsNotSpecified] when cfg carries no
// version; cmd/server fills it from the build info before calling.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{version: cfg.Version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	logger.FromContext(ctx).Debug().Str("version", s.version).Msg("version requested")
	return s.version
}
