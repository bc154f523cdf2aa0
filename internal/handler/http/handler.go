package http

import (
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

type Handler struct {
	services *service.Services

	limiter        *clientLimiter
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterTTL),
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
