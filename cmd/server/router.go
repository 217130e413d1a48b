package main

import (
	"strings"
	"time"

	"note-ledger/cmd/server/handlers"
	attachmentsHandlers "note-ledger/cmd/server/handlers/attachments"
	eventsHandlers "note-ledger/cmd/server/handlers/events"
	foldersHandlers "note-ledger/cmd/server/handlers/folders"
	"note-ledger/cmd/server/handlers/httperr"
	notesHandlers "note-ledger/cmd/server/handlers/notes"
	"note-ledger/cmd/server/middlewares"
	"note-ledger/internal/config"
	"note-ledger/internal/logger"
	util "note-ledger/internal/utils"

	_ "note-ledger/docs" // Load swagger docs

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const (
	RateLimitExpiration = 1 * time.Minute

	// bodySlack leaves room for multipart framing around the largest upload
	bodySlack = 1 << 20
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(cfg config.Config, d *deps) *fiber.App {
	v := util.NewValidator()

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
		BodyLimit:    cfg.MaxUploadMB<<20 + bodySlack,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app, d.collectors...)
	}

	// Health check endpoint, outside versioned API to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz(d.session))

	app.Get("/docs/*", swagger.HandlerDefault)

	if cfg.AttachmentsBackend == config.AttachmentsDisk {
		app.Static(cfg.UploadURL, cfg.UploadDir, fiber.Static{Browse: false})
	}

	var v1 fiber.Router
	if cfg.RequestLoggingEnabled {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
		logger.L().Info("request logging disabled")
	}

	// the limiter runs after jwt so buckets are per owner
	v1.Use(middlewares.JWT(d.verifier), middlewares.BuildRateLimiter(cfg.APIRatePerMin, RateLimitExpiration))

	foldersH := foldersHandlers.NewHandlers(d.folders, v)
	foldersGrp := v1.Group("/folders")
	foldersGrp.Post("/", foldersH.Create)
	foldersGrp.Get("/", foldersH.List)
	foldersGrp.Get("/:folderId", foldersH.Get)
	foldersGrp.Put("/:folderId", foldersH.Update)
	foldersGrp.Delete("/:folderId", foldersH.Delete)

	notesH := notesHandlers.NewHandlers(d.notes, v)
	notesGrp := foldersGrp.Group("/:folderId/notes")
	notesGrp.Post("/", notesH.Create)
	notesGrp.Get("/", notesH.List)
	notesGrp.Get("/:noteId", notesH.Get)
	notesGrp.Put("/:noteId", notesH.Update)
	notesGrp.Delete("/:noteId", notesH.Delete)

	attachmentsH := attachmentsHandlers.NewHandlers(d.attachments)
	notesGrp.Post("/:noteId/attachments", attachmentsH.Upload)
	v1.Get("/attachments/:fileId", attachmentsH.Download)

	eventsH := eventsHandlers.NewHandlers(d.events, v)
	v1.Get("/events", eventsH.List)

	v1.Get("/me", handlers.Me)

	// WebSocket routes authenticate with ?token= since browsers cannot set headers
	wsHandlers := eventsHandlers.NewWebSocketHandlers(d.hub, d.verifier, cfg.WSMaxSessionSec)
	app.Use("/ws", eventsHandlers.LogWSConnections(d.verifier))
	app.Get("/ws/events/stream", wsHandlers.WSUpgrade, websocket.New(wsHandlers.WSEventsStream))

	return app
}
