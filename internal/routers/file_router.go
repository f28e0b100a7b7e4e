package routers

import (
	"Reelhouse/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFileRouter(app *fiber.App, server *cmd.Server) {
	fileHandler := server.FileHandler
	files := app.Group("/projects/:id/files")
	files.Post("/variation", fileHandler.CreateVariation)
	files.Post("/activate", fileHandler.SetActive)
	files.Post("/reference", fileHandler.WriteReferenceScript)
	files.Get("/history", fileHandler.History)
	files.Get("/diff", fileHandler.Diff)
	files.Get("/resolve", fileHandler.Resolve)
	app.Get("/snapshots", fileHandler.SearchSnapshots)
}
