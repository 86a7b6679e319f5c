package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/service"
)

// Deps are the collaborators the routes are built from. Metrics and Ingest are optional.
type Deps struct {
	DB        *sql.DB
	Health    []Pinger
	Documents service.DocumentService
	Auth      service.AuthService
	Sync      service.SyncService
	Export    service.ExportService
	Cookie    SessionCookie
	Metrics   prometheus.Gatherer
	Ingest    *IngestMetrics
	Logger    *logger.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB, d.Health...))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", SwaggerUI())

	requireAuth := middleware.RequireAuth(d.Auth, d.Cookie.Name)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", Login(d.Auth, d.Cookie))
	authGroup.Post("/logout", requireAuth, Logout(d.Auth, d.Cookie))
	authGroup.Get("/me", requireAuth, Me())

	api := app.Group("/api", requireAuth)

	// Static paths are registered before /documents/:id.
	api.Get("/documents", ListDocuments(d.Documents))
	api.Post("/documents", UploadDocuments(d.Documents, d.Ingest))
	api.Get("/documents/search", SearchDocuments(d.Documents))
	api.Get("/documents/stats", DocumentStats(d.Documents))
	api.Post("/documents/delete", DeleteDocument(d.Documents))
	api.All("/documents/delete", MethodNotAllowed(fiber.MethodPost))
	api.Get("/documents/:id", GetDocument(d.Documents))
	api.Get("/documents/:id/download", DownloadDocument(d.Documents, d.Logger))

	api.Get("/export", ExportDocuments(d.Export, d.Logger))

	api.Get("/portal/config", PortalConfig(d.Sync))
	api.Post("/portal/test", CheckPortalConnection(d.Sync))
	api.Post("/portal/sync", SyncPortal(d.Sync))
	api.Get("/portal/status", PortalStatus(d.Sync))
}
