package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumes/api/http/presenter"
	"github.com/artem13815/resumes/pkg/apperr"
)

const msgInternal = "internal server error"

// ErrorHandler maps errors returned by handlers and middleware to the
// JSON error envelope. Unclassified errors become 500 with a generic
// message; the cause is only logged.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return presenter.ValidationError(c, verr.Fields)
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}

		// Only the kind's own message is sent, never the wrap chain.
		var ae *apperr.Error
		if !errors.As(err, &ae) || statusFor(ae.Kind) == http.StatusInternalServerError {
			log.ErrorContext(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
			return presenter.Error(c, http.StatusInternalServerError, msgInternal)
		}
		return presenter.Error(c, statusFor(ae.Kind), ae.Message)
	}
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
