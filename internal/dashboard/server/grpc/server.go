// Package grpc serves the standard gRPC health service so fleet tooling can
// probe displays the same way it probes other services.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcmw "github.com/autopeer-io/dashboard/internal/pkg/middleware/grpc"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/options"
)

// ServiceName is reported alongside the server-wide "" entry.
const ServiceName = "autopeer.dashboard.v1.Dashboard"

type Server struct {
	server  *grpc.Server
	health  *health.Server
	options *options.GrpcOptions
}

func NewServer(opts *options.GrpcOptions) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcmw.UnaryServerTimeoutInterceptor(opts.Timeout)),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s) // Enable grpc_cli support

	for _, svc := range []string{"", ServiceName} {
		hs.SetServingStatus(svc, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return &Server{
		server:  s,
		health:  hs,
		options: opts,
	}
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve reports SERVING while handling lis and NOT_SERVING once ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	log.Info("Starting gRPC Server", "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	for _, svc := range []string{"", ServiceName} {
		s.health.SetServingStatus(svc, healthpb.HealthCheckResponse_SERVING)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		return nil
	}
}
