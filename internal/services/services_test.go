package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/models"
	"Reelhouse/internal/repository"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	cfg        *config.Configuration
	db         *gorm.DB
	logService LogService
	projects   ProjectService
	lifecycle  LifecycleService
	assets     AssetService
	scripts    ScriptService
	snapshots  repository.SnapshotRepository
	scenes     repository.SceneRepository
}

func newTestEnv(t *testing.T, mutate ...func(cfg *config.Configuration)) *testEnv {
	t.Helper()
	cfg := &config.Configuration{Storage: config.StorageConfig{Path: filepath.Join(t.TempDir(), "shows")}}
	for _, m := range mutate {
		m(cfg)
	}
	cfg.ApplyDefaults()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Scene{}, &models.Snapshot{}))

	log := logrus.New()
	log.SetOutput(io.Discard)
	logService := LogService{Log: log}

	projectRepo := repository.NewProjectRepository(db)
	sceneRepo := repository.NewSceneRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	projects := NewProjectService(projectRepo, sceneRepo, cfg, logService)

	return &testEnv{
		cfg:        cfg,
		db:         db,
		logService: logService,
		projects:   projects,
		lifecycle:  NewLifecycleService(projects, snapshotRepo, logService),
		assets:     NewAssetService(projects, NewSceneSeed(cfg), logService),
		scripts:    NewScriptService(projects, logService),
		snapshots:  snapshotRepo,
		scenes:     sceneRepo,
	}
}

// createProject provisions a project and returns it.
func (e *testEnv) createProject(t *testing.T, name string, plan map[int]int) *models.Project {
	t.Helper()
	result, err := e.projects.CreateProject(name, plan)
	require.NoError(t, err)
	require.NotNil(t, result.Project)
	return result.Project
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
