package api

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// Code maps a domain error onto a gRPC status code.
// Not-found sentinels map to NOT_FOUND.
// Validation errors map to INVALID_ARGUMENT.
// Uniqueness conflicts map to ALREADY_EXISTS.
// Cycles and in-use deletes map to FAILED_PRECONDITION.
// Context timeouts map to DEADLINE_EXCEEDED.
// Anything else is a store failure and maps to UNAVAILABLE.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case types.IsNotFound(err):
		return codes.NotFound
	case errors.Is(err, types.ErrInvalidInput),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrTooManyRules):
		return codes.InvalidArgument
	case errors.Is(err, types.ErrDuplicateCode),
		errors.Is(err, types.ErrDuplicateName):
		return codes.AlreadyExists
	case errors.Is(err, types.ErrCategoryCycle),
		errors.Is(err, types.ErrAttributeInUse):
		return codes.FailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Unavailable
	}
}

// toStatus converts err to a gRPC status error. Store failures are logged
// and reported without their details.
func (s *CatalogService) toStatus(err error) error {
	code := Code(err)
	if code == codes.Unavailable {
		s.logger.Error("catalog store failure", zap.Error(err))
		return status.Error(code, "catalog store unavailable")
	}
	return status.Error(code, err.Error())
}
