package grpc

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-save-keeper/internal/logger"
	"github.com/MKhiriev/go-save-keeper/internal/mock"
	"github.com/MKhiriev/go-save-keeper/internal/service"
)

func startHealthServer(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(h.RecoverUnary(), h.LoggingUnary()))
	h.Register(s)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestHandler_Health(t *testing.T) {
	ctx := context.Background()
	svcs := &service.Services{ProgressService: mock.NewMockServerProgressService(gomock.NewController(t))}
	h := NewHandler(svcs, logger.Nop())

	client := startHealthServer(t, h)

	for _, name := range []string{"", ProgressServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), "service %q", name)
	}

	h.Shutdown()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ProgressServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHandler_HealthWithoutProgressService(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())
	client := startHealthServer(t, h)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ProgressServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestInterceptors(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&service.Services{}, &logger.Logger{Logger: zerolog.New(&buf)})
	info := &grpc.UnaryServerInfo{FullMethod: "/savekeeper.Progress/Load"}

	t.Run("logging", func(t *testing.T) {
		buf.Reset()
		resp, err := h.LoggingUnary()(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			return "ok", status.Error(codes.NotFound, "no progress")
		})

		assert.Equal(t, "ok", resp)
		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.Contains(t, buf.String(), `"method":"/savekeeper.Progress/Load"`)
		assert.Contains(t, buf.String(), `"code":"NotFound"`)
	})

	t.Run("recover", func(t *testing.T) {
		buf.Reset()
		_, err := h.RecoverUnary()(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			panic("boom")
		})

		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Contains(t, buf.String(), `"reason":"boom"`)
	})
}
