package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// LoggingUnary logs method, status code and duration of every unary call.
// Payloads are never logged.
func (h *Handler) LoggingUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		var remote string
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			remote = p.Addr.String()
		}

		h.logger.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Str("peer", remote).
			Send()
		return resp, err
	}
}

// RecoverUnary turns a panic in a handler into codes.Internal.
func (h *Handler) RecoverUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error().
					Any("reason", r).
					Bytes("stack", debug.Stack()).
					Str("method", info.FullMethod).
					Msg("panic")
				err = status.Error(codes.Internal, "internal")
			}
		}()
		return next(ctx, req)
	}
}
