// Package grpc exposes the optional gRPC listener: the standard health
// service for probes and server reflection behind the session token.
package grpc

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
)

// TokenParser is the part of auth.TokenService the interceptors need.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type GRPCServer struct {
	address  string
	tokenKey string
	tokens   TokenParser
	logger   logging.Logger
	health   *health.Server
}

// NewGRPCServer builds a server listening on a. Callers pass the session
// token in the metadata entry named tokenKey, which is the same name the
// HTTP session cookie uses.
func NewGRPCServer(a string, l logging.Logger, tokens TokenParser, tokenKey string) *GRPCServer {
	return &GRPCServer{
		address:  a,
		tokenKey: strings.ToLower(tokenKey),
		logger:   l.With("module", "grpc_server"),
		tokens:   tokens,
		health:   health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.tokenUnaryInterceptor),
		grpc.ChainStreamInterceptor(s.tokenStreamInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	cancel()
	<-done
	return err
}
