package workers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/metrics"
)

type metricsServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewMetricsServer serves GET /metrics on address. It returns nil for an
// empty address, which [NewWorkers] skips.
func NewMetricsServer(address string, logger *logger.Logger) Worker {
	if address == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())

	return &metricsServer{
		server: &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
}

func (m *metricsServer) Run(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Err(err).Str("func", "metricsServer.Run").Msg("metrics listener stopped")
		}
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.server.Shutdown(shutdownCtx)
	<-stopped
}
