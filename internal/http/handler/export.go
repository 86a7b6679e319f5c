package handler

import (
	"github.com/gofiber/fiber/v2"

	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/service"
)

// ExportDocuments sends the caller's report in the format named by ?format= (pdf, excel or word).
func ExportDocuments(svc service.ExportService, l *logger.Logger) fiber.Handler {
	l = componentLogger(l)
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		f, err := svc.Export(c.UserContext(), u, middleware.ActorFrom(c), c.Query("format", "pdf"))
		if err != nil {
			return failNavigation(c, l, err)
		}

		c.Attachment(f.Name)
		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderCacheControl, "no-cache, must-revalidate")
		return c.Send(f.Body)
	}
}
