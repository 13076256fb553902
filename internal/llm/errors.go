package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

// APIError represents a failed call to the generation service. StatusCode is the
// HTTP-equivalent status, or 0 when none could be determined.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", msg)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// wrapAPIError translates an SDK error into an *APIError carrying its status.
func wrapAPIError(message string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		StatusCode: statusCode(err),
		Message:    message,
		Cause:      err,
	}
}

// statusCode extracts an HTTP-equivalent status from REST or gRPC SDK errors
func statusCode(err error) int {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}

	var aErr *apierror.APIError
	if errors.As(err, &aErr) {
		if code := aErr.HTTPCode(); code > 0 {
			return code
		}
		if st := aErr.GRPCStatus(); st != nil {
			return grpcToHTTP(st.Code())
		}
	}
	return 0
}

// grpcToHTTP maps the gRPC codes the retry policy cares about
func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Internal:
		return http.StatusInternalServerError
	default:
		return 0
	}
}
