package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/model"
)

const userLocalKey = "session_user"

// Authenticator resolves a raw session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.SessionUser, error)
}

// RequireAuth accepts a session from the cookie or an "Authorization: Bearer" header.
// Unauthenticated requests end with 401 through the application error handler.
func RequireAuth(a Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			if h := c.Get(fiber.HeaderAuthorization); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
				token = strings.TrimSpace(h[7:])
			}
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		user, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired session")
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser is the session stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.SessionUser {
	u, _ := c.Locals(userLocalKey).(*model.SessionUser)
	return u
}

// ActorFrom describes who is calling, for the activity log.
func ActorFrom(c *fiber.Ctx) model.Actor {
	a := model.Actor{IPAddress: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
	if u := CurrentUser(c); u != nil {
		a.UserID = u.ID
	}
	return a
}
