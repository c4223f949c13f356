package middleware

import (
	"errors"

	"go-support/internal/logger"
	"go-support/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every returned error as {error, details} with the
// status of its kind. Fiber's own errors keep their status.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{Error: fiberErr.Message})
		}

		domainErr := utils.ToDomainError(err)
		if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
			log.Error(domainErr.Message,
				zap.String(logger.FieldRequestID, RequestIDFromContext(c.UserContext())),
				zap.String("kind", string(domainErr.Kind)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(domainErr.HTTPStatus).JSON(utils.ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
	}
}
