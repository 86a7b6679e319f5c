package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/export"
	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Message:   message,
		Code:      code,
		RequestID: middleware.RequestIDFrom(c),
	})
}

type apiError struct {
	status  int
	code    string
	message string
}

// classify maps known domain errors to a client-safe response. ok is false for
// anything unexpected, which callers pass on to the global error handler.
func classify(err error) (apiError, bool) {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return apiError{fiber.StatusBadRequest, "INVALID_ID", "invalid document id"}, true
	case errors.Is(err, service.ErrNotFound):
		return apiError{fiber.StatusNotFound, "NOT_FOUND", "document not found"}, true
	case errors.Is(err, service.ErrForbidden):
		return apiError{fiber.StatusForbidden, "FORBIDDEN", "not permitted"}, true
	case errors.Is(err, service.ErrFileMissing):
		return apiError{fiber.StatusNotFound, "FILE_MISSING", "the physical file is missing"}, true
	case errors.Is(err, service.ErrStorageFailure):
		return apiError{fiber.StatusInternalServerError, "STORAGE_FAILURE", "the file could not be processed"}, true
	case errors.Is(err, service.ErrNoFiles):
		return apiError{fiber.StatusBadRequest, "NO_FILES", err.Error()}, true
	case errors.Is(err, service.ErrExpirationRequired),
		errors.Is(err, service.ErrInvalidExpiration),
		errors.Is(err, service.ErrExpirationNotFuture):
		return apiError{fiber.StatusBadRequest, "INVALID_EXPIRATION", err.Error()}, true
	case errors.Is(err, export.ErrUnsupportedFormat):
		return apiError{fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error()}, true
	case errors.Is(err, service.ErrInvalidSyncType):
		return apiError{fiber.StatusBadRequest, "INVALID_SYNC_TYPE", err.Error()}, true
	case errors.Is(err, service.ErrPortalUnavailable):
		return apiError{fiber.StatusBadGateway, "PORTAL_UNAVAILABLE", "external portal unavailable"}, true
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiError{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error()}, true
	}
	return apiError{}, false
}

// serviceError writes the response for a service failure, or hands it to the
// global error handler when it is not a known domain error.
func serviceError(c *fiber.Ctx, err error) error {
	if e, ok := classify(err); ok {
		return writeError(c, e.status, e.code, e.message)
	}
	return err
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Unexpected errors are logged with detail; the client only sees a generic message.
func ErrorHandler(l *logger.Logger) fiber.ErrorHandler {
	l = componentLogger(l)

	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			l.Error("unhandled error", "request_id", middleware.RequestIDFrom(c), "path", c.Path(), "err", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, fe.Code, "UNAUTHORIZED", fe.Message)
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			if fe.Code >= fiber.StatusInternalServerError {
				l.Error("request failed", "request_id", middleware.RequestIDFrom(c), "path", c.Path(), "err", err)
				return writeError(c, fe.Code, "INTERNAL_ERROR", "internal server error")
			}
			return writeError(c, fe.Code, "ERROR", fe.Message)
		}
	}
}
