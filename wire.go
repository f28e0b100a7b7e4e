//go:build wireinject
// +build wireinject

package main

import (
	"Reelhouse/cmd"
	"Reelhouse/database"
	"Reelhouse/internal/config"
	"Reelhouse/internal/handlers"
	"Reelhouse/internal/repository"
	"Reelhouse/internal/services"
	"github.com/google/wire"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration(config.ConfigPath())
}

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		repository.NewProjectRepository,
		repository.NewSceneRepository,
		repository.NewSnapshotRepository,
		services.NewProjectService,
		services.NewSceneSeed,
		services.NewAssetService,
		services.NewLifecycleService,
		services.NewScriptService,
		handlers.NewProjectHandler,
		handlers.NewAssetHandler,
		handlers.NewFileHandler,
		database.SetupDatabase,
		services.NewLogService,
		services.NewJanitorService,
		Provider,
	)
	return nil, nil
}
