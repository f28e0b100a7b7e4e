package layout

import (
	"Reelhouse/internal/helpers"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Grower creates "<scenePrefix><n>/<shotPrefix><m>" sub-trees. Growth only
// adds folders: a smaller shot count than what exists on disk is a no-op for
// the higher-numbered shots.
type Grower struct {
	ScenePrefix string
	ShotPrefix  string
	hidden      *HiddenFolders
	log         logrus.FieldLogger
	onCreate    func(path string)
}

func NewGrower(scenePrefix string, shotPrefix string, hidden *HiddenFolders, log logrus.FieldLogger, onCreate func(path string)) *Grower {
	if log == nil {
		log = discardLogger()
	}
	if hidden == nil {
		hidden = NewHiddenFolders(log, onCreate)
	}
	return &Grower{
		ScenePrefix: scenePrefix,
		ShotPrefix:  shotPrefix,
		hidden:      hidden,
		log:         log,
		onCreate:    onCreate,
	}
}

// Grow ensures a scene folder for every scene of plan under parent and shot
// folders 1..count inside it. Scenes with a count below one get their scene
// folder only. A failing scene does not stop the others.
func (g *Grower) Grow(parent string, plan SceneShotMap) (*Report, error) {
	report := &Report{}
	existing, err := helpers.ListDirNames(parent)
	if err != nil {
		return report, err
	}

	var errs []error
	for _, scene := range plan.Scenes() {
		sceneDir := filepath.Join(parent, SceneName(g.ScenePrefix, scene))
		if !slices.Contains(existing, filepath.Base(sceneDir)) {
			created, err := g.mkdir(sceneDir)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if created {
				report.add(sceneDir)
			}
		}

		shots := plan[scene]
		if shots < 1 {
			continue
		}
		if err := g.growShots(sceneDir, shots, report); err != nil {
			errs = append(errs, fmt.Errorf("scene %d: %w", scene, err))
		}
	}
	return report, errors.Join(errs...)
}

func (g *Grower) growShots(sceneDir string, shots int, report *Report) error {
	existing, err := helpers.ListDirNames(sceneDir)
	if err != nil {
		return err
	}
	var errs []error
	for shot := 1; shot <= shots; shot++ {
		name := ShotName(g.ShotPrefix, shot)
		shotDir := filepath.Join(sceneDir, name)
		if !slices.Contains(existing, name) {
			created, err := g.mkdir(shotDir)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if created {
				report.add(shotDir)
			}
		}
		made, err := g.hidden.EnsureHiddenChildren(shotDir)
		report.add(made...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Grower) mkdir(path string) (bool, error) {
	err := os.Mkdir(path, os.ModePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Error("Failed to create scene/shot folder")
		return false, err
	}
	if g.onCreate != nil {
		g.onCreate(path)
	}
	return true, nil
}

// GrowAll grows plan under every home.
func (g *Grower) GrowAll(homes []string, plan SceneShotMap) (*Report, error) {
	report := &Report{}
	var errs []error
	for _, home := range homes {
		r, err := g.Grow(home, plan)
		report.add(r.Created...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", home, err))
		}
	}
	return report, errors.Join(errs...)
}

// Discovery selects which directories are shot homes.
type Discovery struct {
	ScenePrefix string
	Exclude     []string
	// Populated selects homes that already hold scene folders (incremental
	// growth) instead of empty candidates (first build of a project).
	Populated bool
}

// FindShotHomes walks root and returns, in walk order, every directory that
// qualifies as a shot home under d. root itself is never a home.
func FindShotHomes(root string, d Discovery) ([]string, error) {
	var homes []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() || path == root {
			return nil
		}
		name := entry.Name()
		if helpers.IsHiddenChild(name) {
			return filepath.SkipDir
		}
		if slices.Contains(d.Exclude, name) || helpers.IsReserved(name) || strings.HasPrefix(name, d.ScenePrefix) {
			return nil
		}
		children, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		if d.qualifies(children) {
			homes = append(homes, path)
			return filepath.SkipDir
		}
		return nil
	})
	return homes, err
}

func (d Discovery) qualifies(children []fs.DirEntry) bool {
	if !d.Populated {
		return len(children) == 0
	}
	scenes := 0
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		if !strings.HasPrefix(child.Name(), d.ScenePrefix) {
			return false
		}
		scenes++
	}
	return scenes > 0
}

// ReadSceneShotMap rebuilds the scene/shot plan from one populated shot
// home: scene number from each scene folder, shot count from its highest
// numbered shot folder. Scenes without shot folders are left out.
func ReadSceneShotMap(home string, scenePrefix string, shotPrefix string) (SceneShotMap, error) {
	scenes, err := helpers.ListDirNames(home)
	if err != nil {
		return nil, err
	}
	plan := SceneShotMap{}
	for _, sceneName := range scenes {
		scene, ok := parseNumbered(scenePrefix, sceneName)
		if !ok {
			continue
		}
		shots, err := helpers.ListDirNames(filepath.Join(home, sceneName))
		if err != nil {
			return nil, err
		}
		highest := 0
		for _, shotName := range shots {
			if shot, ok := parseNumbered(shotPrefix, shotName); ok && shot > highest {
				highest = shot
			}
		}
		if highest > 0 {
			plan[scene] = highest
		}
	}
	return plan, nil
}
