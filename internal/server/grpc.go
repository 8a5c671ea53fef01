package server

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-save-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-save-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-save-keeper/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: grpc %s: %w", errListen, cfg.GRPCAddress, err)
	}

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		handler.RecoverUnary(),
		handler.LoggingUnary(),
	))
	handler.Register(s)

	return &grpcServer{
		handler:         handler,
		server:          s,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.serve(); err != nil {
		g.logger.Err(err).Str("func", "grpcServer.RunServer").Msg("gRPC server stopped")
	}
}

func (g *grpcServer) serve() error {
	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
	g.gRPCNetListener.Close()
}
