package auth

import (
	"context"
	"convo-lab/errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UserIDHeader carries the caller identity, set by a trusted gateway.
const UserIDHeader = "x-user-id"

type contextKey string

const UserIDKey contextKey = "user_id"

// UnaryIdentityInterceptor injects the caller identity into the context.
func UnaryIdentityInterceptor(ctx context.Context, req any,
	_ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	userID, err := identityFromMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return handler(WithUserID(ctx, userID), req)
}

// StreamIdentityInterceptor is the streaming counterpart of UnaryIdentityInterceptor.
func StreamIdentityInterceptor(srv any, ss grpc.ServerStream,
	_ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	userID, err := identityFromMetadata(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &identifiedStream{ServerStream: ss, ctx: WithUserID(ss.Context(), userID)})
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the identity injected by the interceptors.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", errors.ErrMissingIdentity
	}
	return userID, nil
}

func identityFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "metadata is missing")
	}
	values := md.Get(UserIDHeader)
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated, "user id is missing")
	}
	userID := strings.TrimSpace(values[0])
	// ':' separates key segments in storage
	if userID == "" || strings.Contains(userID, ":") {
		return "", status.Error(codes.Unauthenticated, "user id is invalid")
	}
	return userID, nil
}

type identifiedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *identifiedStream) Context() context.Context {
	return s.ctx
}
