package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"docportal/internal/logger"
)

// Logger logs each HTTP request as one structured entry with
// request_id, method, path, status and latency (milliseconds).
// When a span is active its trace_id is included. Server errors are logged at error level.
func Logger(l *logger.Logger) fiber.Handler {
	l = l.Component("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		keyvals := []any{
			"request_id", RequestIDFrom(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", float64(time.Since(start).Microseconds()) / 1000,
			"ip", c.IP(),
		}
		if u := CurrentUser(c); u != nil {
			keyvals = append(keyvals, "user_id", u.ID)
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			keyvals = append(keyvals, "trace_id", sc.TraceID().String())
		}

		if status >= fiber.StatusInternalServerError {
			if err != nil {
				keyvals = append(keyvals, "err", err)
			}
			l.Error("request", keyvals...)
		} else {
			l.Info("request", keyvals...)
		}
		return err
	}
}

// LoggerWithWriter logs to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logger.New(w, "info", loc))
}

// statusOf is the status the error handler will eventually write.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
