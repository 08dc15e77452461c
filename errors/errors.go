package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
	ErrEmptyMessage    = fmt.Errorf("message text is empty")
	ErrSelfMessage     = fmt.Errorf("sender and receiver must differ")
	ErrInvalidCommand  = fmt.Errorf("invalid command")
	ErrInvalidProfile  = fmt.Errorf("invalid profile")
	ErrProfileNotFound = fmt.Errorf("profile not found")
	ErrMalformedRecord = fmt.Errorf("malformed record")
	ErrMissingIdentity = fmt.Errorf("missing caller identity")
	ErrInvalidTime     = fmt.Errorf("message time out of range")
)

// MapToGRPCError translates domain errors into gRPC status errors.
// Unknown errors are reported as Internal without leaking their message.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, ErrEmptyMessage),
		stderrors.Is(err, ErrSelfMessage),
		stderrors.Is(err, ErrInvalidCommand),
		stderrors.Is(err, ErrInvalidTime),
		stderrors.Is(err, ErrInvalidProfile):
		return status.Error(codes.InvalidArgument, err.Error())
	case stderrors.Is(err, ErrProfileNotFound):
		return status.Error(codes.NotFound, err.Error())
	case stderrors.Is(err, ErrMissingIdentity):
		return status.Error(codes.Unauthenticated, err.Error())
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
