package inference

import (
	"errors"
	"fmt"

	"github.com/chordal/inference/internal/models"
)

// Error kinds surfaced in the `type` field of the process error payload.
const (
	KindValidation = "ValidationError"
	KindNotFound   = "NotFoundError"
	KindInternal   = "InternalError"
)

// Error is a classified adapter failure. Anything that escapes the adapter
// without a Kind is reported as InternalError.
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// AsErrorResponse converts any error into the boundary error payload.
func AsErrorResponse(err error) models.ErrorResponse {
	var classified *Error
	if errors.As(err, &classified) {
		return models.ErrorResponse{Error: classified.Message, Type: classified.Kind}
	}
	return models.ErrorResponse{Error: err.Error(), Type: KindInternal}
}
