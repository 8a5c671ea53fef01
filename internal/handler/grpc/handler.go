package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/service"
)

// ProgressServiceName is the health-check name of the progress API.
const ProgressServiceName = "savekeeper.Progress"

// Handler is the root gRPC transport handler. For now it only carries the
// standard health service, which load balancers use to see whether the
// progress server accepts traffic.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Both the overall server and
// [ProgressServiceName] start as NOT_SERVING until Register is called.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ProgressServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   hs,
		logger:   logger,
	}
}

// Register adds the handler's services to s and marks them SERVING.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	if h.services != nil && h.services.ProgressService != nil {
		h.health.SetServingStatus(ProgressServiceName, healthpb.HealthCheckResponse_SERVING)
	}
}

// Shutdown flips every service to NOT_SERVING so that watchers drain before
// the server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
