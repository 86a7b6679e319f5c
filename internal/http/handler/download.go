package handler

import (
	"mime"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/service"
)

const flashCookie = "flash"

// isXHR reports whether the browser asked for a JSON answer.
func isXHR(c *fiber.Ctx) bool {
	return c.Get(fiber.HeaderXRequestedWith) == "XMLHttpRequest"
}

// failNavigation reports an error on endpoints a browser navigates to directly:
// JSON for XHR callers, otherwise a flash cookie (percent-encoded message) and a redirect home.
func failNavigation(c *fiber.Ctx, l *logger.Logger, err error) error {
	if isXHR(c) {
		return serviceError(c, err)
	}
	msg := "the request could not be completed"
	if e, ok := classify(err); ok {
		msg = e.message
	} else {
		l.Error("request failed", "request_id", middleware.RequestIDFrom(c), "path", c.Path(), "err", err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.PathEscape(msg),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// DownloadDocument streams a document. With preview=1 images are shown inline and cached;
// every other file is sent as an attachment.
func DownloadDocument(svc service.DocumentService, l *logger.Logger) fiber.Handler {
	l = componentLogger(l)
	return func(c *fiber.Ctx) error {
		if _, err := sessionUser(c); err != nil {
			return err
		}
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return failNavigation(c, l, service.ErrIDRequired)
		}

		preview := c.QueryBool("preview", false)
		dl, err := svc.Open(c.UserContext(), middleware.ActorFrom(c), int64(id), preview)
		if err != nil {
			return failNavigation(c, l, err)
		}

		name := dl.Document.OriginalName
		if dl.Inline {
			c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
			c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		} else {
			c.Attachment(name)
			c.Set(fiber.HeaderCacheControl, "no-cache, must-revalidate")
		}
		c.Set(fiber.HeaderContentType, dl.ContentType)

		size := int(dl.Size)
		if size <= 0 {
			size = -1
		}
		return c.SendStream(dl.Body, size)
	}
}

func componentLogger(l *logger.Logger) *logger.Logger {
	if l == nil {
		l = logger.Nop()
	}
	return l.Component("http")
}
