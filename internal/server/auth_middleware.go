package server

import (
	"context"
	"errors"

	"classifieds/internal/auth"
	"classifieds/internal/middleware"
	"classifieds/internal/models"
	"classifieds/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the bearer token to a user and stores it in locals.
// Every token or identity failure yields the same 401; the specific reason
// only reaches logs and the auth_failures_total metric.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return rejectCredentials(c, "missing_token", nil)
		}

		user, err := s.authenticator.Resolve(c.UserContext(), token)
		if err != nil {
			var aErr *auth.AuthError
			if errors.As(err, &aErr) {
				return rejectCredentials(c, auth.KindOf(err), err)
			}
			return respondError(c, models.NewInternalError(err))
		}

		c.Locals(localUser, user)
		c.Locals("userID", user.ID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func rejectCredentials(c *fiber.Ctx, reason string, err error) error {
	observability.AuthFailures.WithLabelValues(reason).Inc()
	attrs := []any{"reason", reason, "path", c.Path()}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	middleware.Logger.WarnContext(c.UserContext(), "authentication failed", attrs...)
	return respondError(c, models.NewUnauthorizedError("Could not validate credentials"))
}
