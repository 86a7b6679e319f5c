package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/http/middleware"
	"docportal/internal/service"
)

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login checks credentials and sets the session cookie. The token is also
// returned for API clients using the Authorization header.
func Login(svc service.AuthService, cookie SessionCookie) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "username and password are required")
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "username and password are required")
		}

		res, err := svc.Login(c.UserContext(), req.Username, req.Password, middleware.ActorFrom(c))
		if err != nil {
			return serviceError(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookie.Name,
			Value:    res.Token,
			Path:     "/",
			Expires:  res.User.ExpiresAt,
			HTTPOnly: true,
			Secure:   cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(fiber.Map{"success": true, "token": res.Token, "user": res.User})
	}
}

// Logout revokes the current session and clears the cookie.
func Logout(svc service.AuthService, cookie SessionCookie) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		if err := svc.Logout(c.UserContext(), u, middleware.ActorFrom(c)); err != nil {
			return serviceError(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookie.Name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(fiber.Map{"success": true, "message": "session closed"})
	}
}

// Me returns the authenticated user.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "user": u})
	}
}
