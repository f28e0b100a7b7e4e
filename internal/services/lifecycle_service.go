package services

import (
	"Reelhouse/internal/helpers"
	"Reelhouse/internal/layout"
	"Reelhouse/internal/metrics"
	"Reelhouse/internal/models"
	"Reelhouse/internal/repository"
	"errors"
	"fmt"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LifecycleService moves scene files between their active slot
// ("<leaf>/<base><ext>") and their history ("<leaf>/___backup/<base>_v-<n><ext>").
type LifecycleService interface {
	CreateVariation(projectID uint, activePath string) (*models.Snapshot, error)
	SetActive(projectID uint, historyPath string, backupFirst bool) (*models.Snapshot, error)
	History(projectID uint, activePath string) ([]HistoryEntry, error)
	Diff(projectID uint, historyPath string) (string, error)
	ResolveFile(projectID uint, category string, folder string, fileName string, history bool) (string, error)
	SearchSnapshots(filter string, order string, limit int, offset int) ([]models.Snapshot, error)
}

type HistoryEntry struct {
	Name       string
	Path       string
	Version    int
	Size       int64
	ModifiedAt time.Time
}

// ResolveActivePath composes the active file location below a category home.
func ResolveActivePath(home string, folder string, fileName string) string {
	return filepath.Join(home, folder, fileName)
}

// ResolveHistoryPath composes the history file location below a category home.
func ResolveHistoryPath(home string, folder string, fileName string) string {
	return filepath.Join(home, folder, helpers.BackupFolder, fileName)
}

type lifecycleServiceImpl struct {
	projectService ProjectService
	snapshotRepo   repository.SnapshotRepository
	logService     LogService
}

func NewLifecycleService(
	projectService ProjectService,
	snapshotRepo repository.SnapshotRepository,
	logService LogService,
) LifecycleService {
	return &lifecycleServiceImpl{
		projectService: projectService,
		snapshotRepo:   snapshotRepo,
		logService:     logService,
	}
}

// CreateVariation copies the active file to the next free history version.
// The active file and every existing history file stay untouched.
func (s *lifecycleServiceImpl) CreateVariation(projectID uint, activePath string) (*models.Snapshot, error) {
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return nil, err
	}
	active, err := resolveInRoot(session.Root, activePath)
	if err != nil {
		return nil, err
	}
	if isHistoryPath(active) {
		return nil, fmt.Errorf("%w: %s is already a history file", ErrInvalidInput, activePath)
	}
	if err := requireLeaf(active); err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()
	return s.snapshot(session, active)
}

func (s *lifecycleServiceImpl) snapshot(session *Session, active string) (*models.Snapshot, error) {
	log := session.log.WithFields(logrus.Fields{
		"job":  "variation",
		"path": relativeToRoot(session.Root, active),
	})
	info, err := os.Stat(active)
	if err != nil {
		metrics.RecordSnapshot(models.SnapshotActionVariation, false, 0)
		return nil, fmt.Errorf("active file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, active)
	}

	leaf := filepath.Dir(active)
	if _, err := layout.NewHiddenFolders(log, nil).EnsureHiddenChildren(leaf); err != nil {
		return nil, err
	}
	historyDir := filepath.Join(leaf, helpers.BackupFolder)
	base, ext := helpers.SplitExtension(filepath.Base(active))
	version, err := helpers.NextVersion(historyDir, base)
	if err != nil {
		return nil, err
	}
	history := filepath.Join(historyDir, helpers.VersionedName(base, version)+ext)

	sum, size, err := helpers.CopyFileAndComputeChecksum(active, history)
	if err != nil {
		metrics.RecordSnapshot(models.SnapshotActionVariation, false, 0)
		log.WithField("error", err.Error()).Error("Failed to create variation")
		return nil, err
	}
	metrics.RecordSnapshot(models.SnapshotActionVariation, true, size)
	log.WithFields(logrus.Fields{
		"version": version,
		"status":  "created",
	}).Info("variation created")

	snapshot := s.newSnapshot(session, active, history, base, ext, version, models.SnapshotActionVariation, sum, size)
	return snapshot, s.record(snapshot, log)
}

// SetActive replaces the active file with the chosen history version. The
// previous active content is discarded unless backupFirst snapshots it into
// history first. The replacement is a single rename, so a failing copy
// leaves the old active file in place.
func (s *lifecycleServiceImpl) SetActive(projectID uint, historyPath string, backupFirst bool) (*models.Snapshot, error) {
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return nil, err
	}
	history, err := resolveInRoot(session.Root, historyPath)
	if err != nil {
		return nil, err
	}
	if !isHistoryPath(history) {
		return nil, fmt.Errorf("%w: %s", ErrNotHistoryFile, historyPath)
	}
	stem, ext := helpers.SplitExtension(filepath.Base(history))
	base, version, ok := helpers.ParseVersionedName(filepath.Base(history))
	if !ok {
		return nil, fmt.Errorf("%w: %s has no version suffix", ErrNotHistoryFile, stem)
	}
	if _, err := os.Stat(history); err != nil {
		metrics.RecordSnapshot(models.SnapshotActionActivate, false, 0)
		return nil, fmt.Errorf("history file: %w", err)
	}
	active := filepath.Join(filepath.Dir(filepath.Dir(history)), base+ext)
	if err := requireLeaf(active); err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	log := session.log.WithFields(logrus.Fields{
		"job":     "activate",
		"path":    relativeToRoot(session.Root, active),
		"version": version,
	})
	if helpers.FileExists(active) {
		if backupFirst {
			if _, err := s.snapshot(session, active); err != nil {
				return nil, fmt.Errorf("backup of active file: %w", err)
			}
		} else {
			log.Warn("Replacing active file without keeping its current content")
		}
	}

	sum, size, err := helpers.CopyFileAndComputeChecksum(history, active)
	if err != nil {
		metrics.RecordSnapshot(models.SnapshotActionActivate, false, 0)
		log.WithField("error", err.Error()).Error("Failed to set active file")
		return nil, err
	}
	metrics.RecordSnapshot(models.SnapshotActionActivate, true, size)
	log.WithField("status", "activated").Info("history version set active")

	snapshot := s.newSnapshot(session, active, history, base, ext, version, models.SnapshotActionActivate, sum, size)
	return snapshot, s.record(snapshot, log)
}

func (s *lifecycleServiceImpl) newSnapshot(session *Session, active, history, base, ext string, version int, action, sum string, size int64) *models.Snapshot {
	category := ""
	if idx, err := session.Index(); err == nil {
		category, _ = idx.CategoryOf(filepath.Dir(active))
	}
	return &models.Snapshot{
		ProjectID:   session.Project.ID,
		Category:    category,
		Folder:      filepath.Base(filepath.Dir(active)),
		BaseName:    base,
		Extension:   ext,
		Version:     version,
		ActivePath:  relativeToRoot(session.Root, active),
		HistoryPath: relativeToRoot(session.Root, history),
		Action:      action,
		SHA256:      sum,
		Size:        size,
	}
}

func (s *lifecycleServiceImpl) record(snapshot *models.Snapshot, log logrus.FieldLogger) error {
	if err := s.snapshotRepo.Create(snapshot); err != nil {
		log.WithField("error", err.Error()).Error("Failed to record snapshot")
		return fmt.Errorf("file written but snapshot not recorded: %w", err)
	}
	return nil
}

// History lists the history versions of an active file, oldest first.
func (s *lifecycleServiceImpl) History(projectID uint, activePath string) ([]HistoryEntry, error) {
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return nil, err
	}
	active, err := resolveInRoot(session.Root, activePath)
	if err != nil {
		return nil, err
	}
	base, ext := helpers.SplitExtension(filepath.Base(active))
	historyDir := filepath.Join(filepath.Dir(active), helpers.BackupFolder)

	entries, err := os.ReadDir(historyDir)
	if errors.Is(err, os.ErrNotExist) {
		return []HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	history := []HistoryEntry{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		entryBase, version, ok := helpers.ParseVersionedName(name)
		if !ok || entryBase != base {
			continue
		}
		if _, entryExt := helpers.SplitExtension(name); entryExt != ext {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		history = append(history, HistoryEntry{
			Name:       name,
			Path:       relativeToRoot(session.Root, filepath.Join(historyDir, name)),
			Version:    version,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Version < history[j].Version
	})
	return history, nil
}

// Diff is the unified diff from a history version to the current active file.
func (s *lifecycleServiceImpl) Diff(projectID uint, historyPath string) (string, error) {
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return "", err
	}
	history, err := resolveInRoot(session.Root, historyPath)
	if err != nil {
		return "", err
	}
	if !isHistoryPath(history) {
		return "", fmt.Errorf("%w: %s", ErrNotHistoryFile, historyPath)
	}
	base, _, ok := helpers.ParseVersionedName(filepath.Base(history))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotHistoryFile, historyPath)
	}
	_, ext := helpers.SplitExtension(filepath.Base(history))
	active := filepath.Join(filepath.Dir(filepath.Dir(history)), base+ext)

	from, err := os.ReadFile(history)
	if err != nil {
		return "", err
	}
	to, err := os.ReadFile(active)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: relativeToRoot(session.Root, history),
		ToFile:   relativeToRoot(session.Root, active),
		Context:  3,
	})
}

// ResolveFile returns the project-relative path of fileName inside folder of
// a category home, in the active slot or the history folder.
func (s *lifecycleServiceImpl) ResolveFile(projectID uint, category string, folder string, fileName string, history bool) (string, error) {
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return "", err
	}
	if err := validateFolderName(fileName); err != nil {
		return "", err
	}
	if folder != "" {
		if err := validateFolderName(folder); err != nil {
			return "", err
		}
	}
	idx, err := session.Index()
	if err != nil {
		return "", err
	}
	home, ok := idx.Lookup(category)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCategoryNotProvisioned, category)
	}
	path := ResolveActivePath(home, folder, fileName)
	if history {
		path = ResolveHistoryPath(home, folder, fileName)
	}
	return relativeToRoot(session.Root, path), nil
}

func (s *lifecycleServiceImpl) SearchSnapshots(filter string, order string, limit int, offset int) ([]models.Snapshot, error) {
	whereClause, args, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	orderClause, err := ParseOrder(order)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	return s.snapshotRepo.SnapshotsSearch(whereClause, args, orderClause, limit, offset)
}

// requireLeaf accepts only files that sit directly in an asset or shot leaf.
// Hidden children are never created outside leaves.
func requireLeaf(path string) error {
	parent := filepath.Base(filepath.Dir(path))
	if !helpers.IsReserved(parent) || helpers.IsHiddenChild(parent) {
		return fmt.Errorf("%w: %s is not inside an asset or shot folder", ErrInvalidInput, parent)
	}
	return nil
}

func isHistoryPath(path string) bool {
	return filepath.Base(filepath.Dir(path)) == helpers.BackupFolder
}
