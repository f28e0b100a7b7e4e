package cmd

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/handlers"
	"Reelhouse/internal/services"
	"gorm.io/gorm"
)

type Server struct {
	Configuration    *config.Configuration
	DB               *gorm.DB
	ProjectService   services.ProjectService
	ProjectHandler   *handlers.ProjectHandler
	AssetService     services.AssetService
	AssetHandler     *handlers.AssetHandler
	LifecycleService services.LifecycleService
	ScriptService    services.ScriptService
	FileHandler      *handlers.FileHandler
	LogService       services.LogService
	JanitorService   *services.Janitor
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	projectService services.ProjectService,
	projectHandler *handlers.ProjectHandler,
	assetService services.AssetService,
	assetHandler *handlers.AssetHandler,
	lifecycleService services.LifecycleService,
	scriptService services.ScriptService,
	fileHandler *handlers.FileHandler,
	logService services.LogService,
	janitorService *services.Janitor,
) *Server {
	return &Server{
		Configuration:    configuration,
		DB:               db,
		ProjectService:   projectService,
		ProjectHandler:   projectHandler,
		AssetService:     assetService,
		AssetHandler:     assetHandler,
		LifecycleService: lifecycleService,
		ScriptService:    scriptService,
		FileHandler:      fileHandler,
		LogService:       logService,
		JanitorService:   janitorService,
	}
}
