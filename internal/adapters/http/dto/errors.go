// Package dto holds the request and response bodies of the HTTP API and the
// translation of domain errors into responses.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
)

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	// Code is machine-readable, e.g. "NOT_FOUND".
	Code string `json:"code"`

	Message string `json:"message"`

	// Details is a field map for request validation failures and the
	// exported notification for entity validation failures.
	Details any `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal     = "INTERNAL_ERROR"
	ErrorCodeTimeout      = "TIMEOUT"
	ErrorCodeBadRequest   = "BAD_REQUEST"
	ErrorCodeTooLarge     = "PAYLOAD_TOO_LARGE"
)

// InternalErrorMessage replaces the message of unexpected errors.
const InternalErrorMessage = "an internal error occurred"

// NewErrorResponse creates an error response.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	}
}

// NewErrorResponseWithDetails creates an error response carrying details.
func NewErrorResponseWithDetails(code, message string, details any) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	}
}

// WithTraceID sets the trace ID.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError translates err into a status code and response body.
// Unknown errors become a 500 with a fixed message.
func MapDomainError(err error) (int, *ErrorResponse) {
	var (
		code    string
		details any
	)

	message := err.Error()

	var validationErr *domain.EntityValidationError

	switch {
	case domain.IsNotFound(err):
		code = ErrorCodeNotFound
		message = unwrapMessage[*domain.EntityNotFoundError](err)
	case errors.As(err, &validationErr):
		code = ErrorCodeValidation
		message = validationErr.Message
		details = validationErr.Errors
	case domain.IsInvalidIdentifier(err):
		code = ErrorCodeBadRequest
		message = unwrapMessage[*domain.InvalidIdentifierError](err)
	case domain.IsInvalidArgument(err):
		code = ErrorCodeBadRequest
		message = unwrapMessage[*domain.InvalidArgumentError](err)
	case domain.IsConflict(err):
		code = ErrorCodeConflict
		message = unwrapMessage[*domain.ConflictError](err)
	case domain.IsUnavailable(err):
		code = ErrorCodeUnavailable
		message = unwrapMessage[*domain.UnavailableError](err)
	case errors.Is(err, context.DeadlineExceeded):
		code = ErrorCodeTimeout
		message = "request timeout exceeded"
	default:
		code = ErrorCodeInternal
		message = InternalErrorMessage
	}

	return HTTPStatusFromCode(code), NewErrorResponseWithDetails(code, message, details)
}

// unwrapMessage returns the message of the typed domain error inside err,
// dropping the context added by the layers that wrapped it.
func unwrapMessage[E error](err error) string {
	var target E
	if errors.As(err, &target) {
		return target.Error()
	}

	return err.Error()
}

// HandleError writes the response for err. Internal errors are logged with
// their full chain; the client only sees the fixed message.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithCode aborts the chain with an error response built from code.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// GetTraceID returns the trace ID of the request span, if any.
func GetTraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}
