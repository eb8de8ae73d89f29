package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusForError maps application errors to HTTP status codes.
// Not-found lookups map to 404, business conflicts to 409, rejected
// input to 400; everything else is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, delivery.ErrDeliveryNotInTransit),
		errors.Is(err, commands.ErrDeliveryAlreadyExists),
		errors.Is(err, commands.ErrDriverNotAvailable),
		errors.Is(err, services.ErrNoDriverAvailable):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the API error body with the mapped status.
// Internal errors are not echoed back to the client.
func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, errorBody{
		Code:    code,
		Message: message,
	})
}
