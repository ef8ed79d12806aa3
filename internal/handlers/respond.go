package handlers

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func validationFailed(c *fiber.Ctx, errs services.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
		Error:   true,
		Message: "validation failed",
		Fields:  errs.Fields(),
	})
}

// internalError logs the cause, reports it to Sentry when configured and
// answers with a generic 500.
func internalError(c *fiber.Ctx, action string, err error) error {
	attrs := []any{
		"action", action,
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	}
	if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		attrs = append(attrs, "request_id", rid)
	}
	if userID, uerr := session.UserID(c); uerr == nil {
		attrs = append(attrs, "user_id", userID.String())
	}
	slog.Error(action+" failed", attrs...)

	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// isFormPost reports whether the request came from an HTML form, which expects
// a redirect instead of a JSON body.
func isFormPost(c *fiber.Ctx) bool {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}
