package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// publicMethodPrefix is open to anonymous callers so probes can reach it.
const publicMethodPrefix = "/grpc.health.v1.Health/"

// IdentityFromContext returns the caller bound by the token interceptors.
func IdentityFromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}

func (s *GRPCServer) authenticate(ctx context.Context, method string) (context.Context, error) {
	if strings.HasPrefix(method, publicMethodPrefix) {
		return ctx, nil
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(s.tokenKey); len(values) > 0 {
			token = values[0]
		}
	}
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, common.InvalidTokenMessage)
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "method", method, "error", err)
		return nil, status.Error(codes.Unauthenticated, common.InvalidTokenMessage)
	}

	return context.WithValue(ctx, identityKey, &models.Identity{ID: claims.UserID, UserName: claims.Subject}), nil
}

func (s *GRPCServer) tokenUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := s.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

// authedStream carries the authenticated context into a stream handler.
type authedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authedStream) Context() context.Context { return a.ctx }

func (s *GRPCServer) tokenStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authedStream{ServerStream: ss, ctx: ctx})
}
