package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an error from the use cases to an HTTP status code.
// Persistence failures win over everything they wrap.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrTransitionInFlight),
		errors.Is(err, cart.ErrNoPendingConflict),
		errors.Is(err, cart.ErrConflictChanged):
		return http.StatusConflict
	case errors.Is(err, errs.ErrMalformedOrder),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, cart.ErrCartIsEmpty),
		errors.Is(err, commands.ErrSessionIsRequired),
		errors.Is(err, queries.ErrSessionIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
