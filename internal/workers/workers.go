package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// NewServerWorkers returns the background jobs of the vault server.
func NewServerWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	return NewWorkers(
		NewLegacyUpgradeWorker(services.UpgradeService, cfg, logger),
	)
}

// Run starts every worker in its own goroutine and waits for all of them.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
