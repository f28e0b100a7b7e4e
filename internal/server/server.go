package server

import (
	"Reelhouse/cmd"
	"Reelhouse/internal/config"
	"Reelhouse/internal/metrics"
	"Reelhouse/internal/routers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp builds the fiber app with every route registered. It does not listen.
func NewApp(server *cmd.Server, cfg *config.Configuration) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "Reelhouse",
	})

	app.Use(logger.New(logger.Config{
		Output: server.LogService.Log.Writer(),
	}))
	app.Use(metrics.Middleware())

	routers.SetupRoutes(app, server)
	return app
}
