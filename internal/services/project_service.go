package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/helpers"
	"Reelhouse/internal/index"
	"Reelhouse/internal/layout"
	"Reelhouse/internal/metrics"
	"Reelhouse/internal/models"
	"Reelhouse/internal/repository"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
)

type ProjectService interface {
	CreateProject(name string, plan layout.SceneShotMap) (*ProvisionResult, error)
	GetProjects() ([]models.Project, error)
	GetProjectByID(id uint) (*models.Project, error)
	DiscoverProjects() ([]models.Project, error)
	OpenSession(id uint) (*Session, error)
	CloseSession(id uint)
	SceneShotMap(id uint) (layout.SceneShotMap, error)
	AddScenes(id uint, plan layout.SceneShotMap) (*ProvisionResult, error)
	Rescan(id uint) ([]CategoryHome, error)
	Categories(id uint) ([]CategoryHome, error)
	RepairProject(id uint) ([]string, error)
}

// ProvisionResult lists what a provisioning call created. It is returned
// alongside a non-nil error when only part of the work failed.
type ProvisionResult struct {
	Project *models.Project
	Created []string
	Seeded  []string
}

type CategoryHome struct {
	Key  string
	Kind index.Kind
	Path string
}

type projectServiceImpl struct {
	projectRepo   repository.ProjectRepository
	sceneRepo     repository.SceneRepository
	configuration *config.Configuration
	logService    LogService
	categories    index.Categories
	seed          SceneSeed

	sessionsMu sync.Mutex
	sessions   map[uint]*Session
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	sceneRepo repository.SceneRepository,
	configuration *config.Configuration,
	logService LogService,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:   projectRepo,
		sceneRepo:     sceneRepo,
		configuration: configuration,
		logService:    logService,
		categories:    index.DefaultCategories(),
		seed:          NewSceneSeed(configuration),
		sessions:      map[uint]*Session{},
	}
}

func (s *projectServiceImpl) layoutConfig() config.LayoutConfig {
	return s.configuration.Layout
}

func (s *projectServiceImpl) hiddenFolders(log logrus.FieldLogger) *layout.HiddenFolders {
	return layout.NewHiddenFolders(log, nil)
}

func (s *projectServiceImpl) grower(log logrus.FieldLogger) *layout.Grower {
	l := s.layoutConfig()
	return layout.NewGrower(l.ScenePrefix, l.ShotPrefix, s.hiddenFolders(log), log, nil)
}

// CreateProject builds <storage>/<name>: the folder template, the scene/shot
// plan in every empty shot home, the hidden children of every reserved leaf
// and one seed scene file per shot category and shot. An empty plan means
// one scene with one shot.
func (s *projectServiceImpl) CreateProject(name string, plan layout.SceneShotMap) (*ProvisionResult, error) {
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	existing, err := s.projectRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}
	if len(plan) == 0 {
		plan = layout.SceneShotMap{1: 1}
	}

	root := filepath.Join(s.configuration.Storage.Path, name)
	log := s.logService.Project(name)
	if err := os.MkdirAll(s.configuration.Storage.Path, os.ModePerm); err != nil {
		return nil, err
	}
	if err := os.Mkdir(root, os.ModePerm); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s exists on disk", ErrProjectExists, root)
		}
		return nil, err
	}

	result := &ProvisionResult{}
	var errs []error

	report, err := layout.NewExpander(s.hiddenFolders(log), log, nil).Expand(root, s.layoutConfig().TemplateRoot())
	result.Created = append(result.Created, report.Created...)
	metrics.RecordDirectoriesCreated("template", len(report.Created))
	if err != nil {
		errs = append(errs, fmt.Errorf("template: %w", err))
	}

	homes, err := layout.FindShotHomes(root, layout.Discovery{
		ScenePrefix: s.layoutConfig().ScenePrefix,
		Exclude:     s.layoutConfig().NoShotFolders,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("shot homes: %w", err))
	}
	report, err = s.grower(log).GrowAll(homes, plan)
	result.Created = append(result.Created, report.Created...)
	metrics.RecordDirectoriesCreated("shots", len(report.Created))
	if err != nil {
		errs = append(errs, fmt.Errorf("shots: %w", err))
	}

	project := &models.Project{Name: name, Path: root}
	if err := s.projectRepo.Create(project); err != nil {
		if rmErr := os.RemoveAll(root); rmErr != nil {
			log.WithField("error", rmErr.Error()).Error("Failed to remove unregistered project root")
			errs = append(errs, rmErr)
		}
		return &ProvisionResult{}, errors.Join(append(errs, err)...)
	}
	if err := s.sceneRepo.MergeShotCounts(project.ID, plan); err != nil {
		errs = append(errs, err)
	}
	result.Project = project

	session := s.session(*project)
	idx, err := session.Index()
	if err != nil {
		errs = append(errs, err)
	} else {
		seeded, err := s.seedShotFiles(idx, plan)
		result.Seeded = seeded
		if err != nil {
			errs = append(errs, fmt.Errorf("shot files: %w", err))
		}
	}

	log.WithFields(logrus.Fields{
		"path":    root,
		"created": len(result.Created),
		"seeded":  len(result.Seeded),
		"scenes":  len(plan),
		"shots":   plan.TotalShots(),
	}).Info("project created")
	return result, errors.Join(errs...)
}

func (s *projectServiceImpl) GetProjects() ([]models.Project, error) {
	return s.projectRepo.FindAll()
}

func (s *projectServiceImpl) GetProjectByID(id uint) (*models.Project, error) {
	project, err := s.projectRepo.FindWithScenes(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrProjectNotFound, id)
	}
	return project, err
}

// DiscoverProjects finds the directories under the storage path whose
// children are exactly the top-level template folders and registers the
// ones not yet known, reading their scene/shot plan from disk. Known
// projects found under a moved storage path get their path updated.
func (s *projectServiceImpl) DiscoverProjects() ([]models.Project, error) {
	names, err := helpers.ListDirNames(s.configuration.Storage.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Project{}, nil
		}
		return nil, err
	}
	expected := layout.TopLevelNames(s.layoutConfig().TemplateRoot())
	sort.Strings(expected)

	projects := []models.Project{}
	var errs []error
	for _, name := range names {
		root := filepath.Join(s.configuration.Storage.Path, name)
		children, err := helpers.ListDirNames(root)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !slices.Equal(children, expected) {
			continue
		}
		project, err := s.projectRepo.FindByName(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if project == nil {
			project, err = s.register(name, root)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		} else if project.Path != root {
			project.Path = root
			if err := s.projectRepo.Update(project); err != nil {
				errs = append(errs, err)
				continue
			}
			s.CloseSession(project.ID)
			s.logService.Project(name).WithField("path", root).Info("project path updated")
		}
		projects = append(projects, *project)
	}
	return projects, errors.Join(errs...)
}

func (s *projectServiceImpl) register(name string, root string) (*models.Project, error) {
	project := &models.Project{Name: name, Path: root}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	plan, err := s.session(*project).readPlan()
	if err != nil {
		return project, err
	}
	if err := s.sceneRepo.MergeShotCounts(project.ID, plan); err != nil {
		return project, err
	}
	s.logService.Project(name).WithFields(logrus.Fields{
		"path":   root,
		"scenes": len(plan),
	}).Info("project discovered")
	return project, nil
}

// OpenSession returns the session of a registered project, creating it on
// first use.
func (s *projectServiceImpl) OpenSession(id uint) (*Session, error) {
	s.sessionsMu.Lock()
	session, ok := s.sessions[id]
	s.sessionsMu.Unlock()
	if ok {
		return session, nil
	}
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProjectNotFound, id)
		}
		return nil, err
	}
	return s.session(*project), nil
}

func (s *projectServiceImpl) session(project models.Project) *Session {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	if session, ok := s.sessions[project.ID]; ok {
		return session
	}
	session := newSession(project, s.categories, s.layoutConfig(), s.logService.Project(project.Name))
	s.sessions[project.ID] = session
	metrics.SetSessionsOpen(len(s.sessions))
	return session
}

func (s *projectServiceImpl) CloseSession(id uint) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	delete(s.sessions, id)
	metrics.SetSessionsOpen(len(s.sessions))
}

// SceneShotMap reads the current plan from the first populated shot home.
func (s *projectServiceImpl) SceneShotMap(id uint) (layout.SceneShotMap, error) {
	session, err := s.OpenSession(id)
	if err != nil {
		return nil, err
	}
	return session.readPlan()
}

// AddScenes grows plan into every populated shot home, merges it into the
// stored running total and seeds the new shots' scene files.
func (s *projectServiceImpl) AddScenes(id uint, plan layout.SceneShotMap) (*ProvisionResult, error) {
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: no scenes given", ErrInvalidInput)
	}
	session, err := s.OpenSession(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	log := session.log.WithField("job", "add-scenes")
	homes, err := session.ShotHomes()
	if err != nil {
		return nil, err
	}
	if len(homes) == 0 {
		homes, err = layout.FindShotHomes(session.Root, layout.Discovery{
			ScenePrefix: s.layoutConfig().ScenePrefix,
			Exclude:     s.layoutConfig().NoShotFolders,
		})
		if err != nil {
			return nil, err
		}
	}

	project := session.Project
	result := &ProvisionResult{Project: &project}
	var errs []error

	report, err := s.grower(log).GrowAll(homes, plan)
	result.Created = report.Created
	metrics.RecordDirectoriesCreated("shots", len(report.Created))
	if err != nil {
		errs = append(errs, err)
	}
	if err := s.sceneRepo.MergeShotCounts(id, plan); err != nil {
		errs = append(errs, err)
	}

	session.Invalidate()
	idx, err := session.Index()
	if err != nil {
		errs = append(errs, err)
	} else {
		seeded, err := s.seedShotFiles(idx, plan)
		result.Seeded = seeded
		if err != nil {
			errs = append(errs, fmt.Errorf("shot files: %w", err))
		}
	}

	log.WithFields(logrus.Fields{
		"homes":   len(homes),
		"created": len(result.Created),
		"seeded":  len(result.Seeded),
	}).Info("scenes added")
	return result, errors.Join(errs...)
}

// seedShotFiles places "<key>_scene_<s>_shot_<n><ext>" in every existing shot
// folder of plan for the categories that carry scene files.
func (s *projectServiceImpl) seedShotFiles(idx *index.Index, plan layout.SceneShotMap) ([]string, error) {
	l := s.layoutConfig()
	var seeded []string
	var errs []error
	for _, category := range s.categories.OfKind(index.KindShot) {
		if !category.SeedsShotFiles {
			continue
		}
		home, ok := idx.Lookup(category.Key)
		if !ok {
			continue
		}
		for _, scene := range plan.Scenes() {
			for shot := 1; shot <= plan[scene]; shot++ {
				dir := filepath.Join(home, layout.SceneName(l.ScenePrefix, scene), layout.ShotName(l.ShotPrefix, shot))
				if !helpers.DirExists(dir) {
					continue
				}
				dst := filepath.Join(dir, category.ShotFileName(scene, shot, s.seed.Extension))
				created, err := s.seed.Place(dst)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if created {
					seeded = append(seeded, dst)
				}
			}
		}
	}
	return seeded, errors.Join(errs...)
}

func (s *projectServiceImpl) Rescan(id uint) ([]CategoryHome, error) {
	session, err := s.OpenSession(id)
	if err != nil {
		return nil, err
	}
	idx, err := session.Rescan()
	if err != nil {
		return nil, err
	}
	return s.categoryHomes(idx), nil
}

func (s *projectServiceImpl) Categories(id uint) ([]CategoryHome, error) {
	session, err := s.OpenSession(id)
	if err != nil {
		return nil, err
	}
	idx, err := session.Index()
	if err != nil {
		return nil, err
	}
	return s.categoryHomes(idx), nil
}

func (s *projectServiceImpl) categoryHomes(idx *index.Index) []CategoryHome {
	homes := []CategoryHome{}
	for _, category := range s.categories {
		if path, ok := idx.Lookup(category.Key); ok {
			homes = append(homes, CategoryHome{Key: category.Key, Kind: category.Kind, Path: path})
		}
	}
	return homes
}

// RepairProject recreates missing hidden children below every reserved leaf
// of the project and rescans its index.
func (s *projectServiceImpl) RepairProject(id uint) ([]string, error) {
	session, err := s.OpenSession(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	created, err := s.hiddenFolders(session.log).Repair(session.Root)
	metrics.RecordDirectoriesCreated("repair", len(created))
	if _, scanErr := session.Rescan(); scanErr != nil {
		err = errors.Join(err, scanErr)
	}
	return created, err
}
