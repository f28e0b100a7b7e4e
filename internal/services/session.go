package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/index"
	"Reelhouse/internal/layout"
	"Reelhouse/internal/metrics"
	"Reelhouse/internal/models"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Session is the in-memory state of one open project. Mutating operations
// hold the session lock for their whole duration, so one project has a
// single writer at a time.
//
// The category index and the populated shot homes are computed on first use
// and kept until Rescan or Invalidate.
type Session struct {
	Project models.Project
	Root    string

	writeMu sync.Mutex

	mu         sync.Mutex
	index      *index.Index
	shotHomes  []string
	categories index.Categories
	layout     config.LayoutConfig
	log        *logrus.Entry
}

func newSession(project models.Project, categories index.Categories, layoutConfig config.LayoutConfig, log *logrus.Entry) *Session {
	return &Session{
		Project:    project,
		Root:       project.Path,
		categories: categories,
		layout:     layoutConfig,
		log:        log,
	}
}

func (s *Session) Lock() {
	s.writeMu.Lock()
}

func (s *Session) Unlock() {
	s.writeMu.Unlock()
}

// Index returns the memoized category index, scanning on first use.
func (s *Session) Index() (*index.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}
	return s.scanLocked()
}

func (s *Session) Rescan() (*index.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanLocked()
}

// Invalidate drops the memoized index; the next Index call rescans.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

func (s *Session) scanLocked() (*index.Index, error) {
	start := time.Now()
	idx, err := index.Scan(s.Root, s.categories, s.layout.ScenePrefix)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"path":  s.Root,
			"error": err.Error(),
		}).Error("Failed to scan project tree")
		return nil, err
	}
	elapsed := time.Since(start)
	homes := len(idx.Homes())
	metrics.RecordIndexScan(s.Project.Name, homes, elapsed)
	s.log.WithFields(logrus.Fields{
		"homes":    homes,
		"duration": elapsed.String(),
	}).Debug("project tree scanned")
	s.index = idx
	return idx, nil
}

// ShotHomes returns the directories that already hold scene folders, found
// once per session.
func (s *Session) ShotHomes() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shotHomes != nil {
		return s.shotHomes, nil
	}
	homes, err := layout.FindShotHomes(s.Root, layout.Discovery{
		ScenePrefix: s.layout.ScenePrefix,
		Exclude:     s.layout.NoShotFolders,
		Populated:   true,
	})
	if err != nil {
		return nil, err
	}
	if len(homes) > 0 {
		s.shotHomes = homes
	}
	return homes, nil
}

// readPlan rebuilds the scene/shot plan from the first populated shot home.
func (s *Session) readPlan() (layout.SceneShotMap, error) {
	homes, err := s.ShotHomes()
	if err != nil {
		return nil, err
	}
	if len(homes) == 0 {
		return layout.SceneShotMap{}, nil
	}
	return layout.ReadSceneShotMap(homes[0], s.layout.ScenePrefix, s.layout.ShotPrefix)
}
