package routers

import (
	"Reelhouse/cmd"
	"Reelhouse/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupProjectRouter(app, server)
	SetupFileRouter(app, server)
	SetupJanitorRouter(app, server)
	app.Get("/metrics", metrics.Handler())
}
