package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/sony/gobreaker/v2"
)

// BackendErrorResponse answers with the HTTP status that best describes a
// failed backend call. Client errors the backend reported are passed through
// with its message; everything else is a gateway failure. A tripped breaker
// is recorded on the context as ErrServiceUnavailable.
func BackendErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	_ = c.Error(err)

	var reqErr *backend.RequestError
	switch {
	case backend.IsNotFound(err):
		NotFoundResponse(c, err.Error())
	case errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500:
		ErrorResponse(c, reqErr.StatusCode, reqErr.Message)
	case errors.Is(err, backend.ErrEmailRequired), errors.Is(err, backend.ErrInvalidRequest):
		BadRequestResponse(c, err.Error())
	case errors.Is(err, ErrServiceUnavailable):
		ServiceUnavailableResponse(c, "backend temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		ErrorResponse(c, http.StatusGatewayTimeout, "backend timed out")
	default:
		BadGatewayResponse(c, "backend request failed")
	}
}
