package routers

import (
	"Reelhouse/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupProjectRouter(app *fiber.App, server *cmd.Server) {
	projectHandler := server.ProjectHandler
	assetHandler := server.AssetHandler
	app.Get("/projects", projectHandler.ListProjects)
	app.Post("/projects", projectHandler.CreateProject)
	app.Get("/projects/discover", projectHandler.DiscoverProjects)
	app.Get("/projects/:id", projectHandler.GetProjectByID)
	app.Get("/projects/:id/scenes", projectHandler.GetScenes)
	app.Post("/projects/:id/scenes", projectHandler.AddScenes)
	app.Post("/projects/:id/rescan", projectHandler.Rescan)
	app.Post("/projects/:id/repair", projectHandler.Repair)
	app.Get("/projects/:id/categories", projectHandler.Categories)
	app.Delete("/projects/:id/session", projectHandler.CloseSession)
	app.Get("/folders/kinds", assetHandler.ListFolderKinds)
	app.Post("/projects/:id/folders", assetHandler.CreateFolders)
}
