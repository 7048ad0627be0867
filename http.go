package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// respondError maps a flow error to one JSON response. Structured errors with
// a client-facing category surface their own message and status; anything
// internal or unstructured is collapsed into the fallback so store internals,
// stack traces, and uniqueness details never reach the client.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var rich *errors.Error
	if errors.As(err, &rich) {
		if rich.Category != errors.CategoryInternal {
			return c.Status(statusFromError(rich)).JSON(fiber.Map{
				"error": rich.Message,
			})
		}

		// Missing signing secret is operator-fixable and its message is
		// already generic, so it may cross the boundary as-is.
		if rich.TextCode == TextCodeMissingSecret {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": rich.Message,
			})
		}
	}

	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func statusFromError(rich *errors.Error) int {
	if rich.Code >= http.StatusBadRequest && rich.Code < 600 {
		return rich.Code
	}

	switch rich.Category {
	case errors.CategoryValidation, errors.CategoryBadInput, errors.CategoryConflict:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
