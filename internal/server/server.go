package server

import (
	stderrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// New builds the HTTP application serving the games held by m.
func New(cfg *config.Config, m *Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h := &handlers{manager: m}

	api := app.Group("/api")
	api.Post("/games", h.create)
	api.Get("/games/:id", h.state)
	api.Delete("/games/:id", h.remove)
	api.Get("/games/:id/moves", h.moves)
	api.Post("/games/:id/move", h.move)
	api.Post("/games/:id/promote", h.promote)
	api.Get("/games/:id/snapshot", h.snapshot)
	api.Put("/games/:id/snapshot", h.restore)

	app.Use("/ws", requireUpgrade)
	app.Get("/ws/games/:id", websocket.New(m.serveConn, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         splitOrigins(cfg.Server.AllowOrigins),
	}))

	return app
}

func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// statusFor maps an error to the HTTP status reported to the client.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case stderrors.As(err, &fe):
		return fe.Code
	case stderrors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case stderrors.Is(err, errors.ErrIllegalMove),
		stderrors.Is(err, errors.ErrPromotionPending),
		stderrors.Is(err, errors.ErrInvalidPromotion):
		return fiber.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrInvalidCoordinate),
		stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidSetup),
		stderrors.Is(err, errors.ErrLoadFormatMismatch):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
