package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/http/middleware"
	"docportal/internal/service"
)

func PortalConfig(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		cfg, err := svc.Config(c.UserContext(), u.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "config": cfg})
	}
}

// CheckPortalConnection reports success=false with 200 when the portal does not answer.
func CheckPortalConnection(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.TestConnection(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":    res.Connected,
			"message":    res.Message,
			"latency_ms": res.LatencyMS,
			"portal":     res.Portal,
		})
	}
}

type syncRequest struct {
	Type string `json:"type" form:"type"`
}

// SyncPortal imports remote documents. The type comes from the body or ?type=.
func SyncPortal(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := sessionUser(c); err != nil {
			return err
		}
		var req syncRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
			}
		}
		if req.Type == "" {
			req.Type = c.Query("type")
		}
		typ, err := service.ParseSyncType(req.Type)
		if err != nil {
			return serviceError(c, err)
		}

		res, err := svc.Sync(c.UserContext(), middleware.ActorFrom(c), typ)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Synchronization finished: %d imported, %d updated", res.Imported, res.Updated),
			"data":    res,
		})
	}
}

func PortalStatus(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		st, err := svc.Status(c.UserContext(), u.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "status": st})
	}
}
