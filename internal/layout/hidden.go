package layout

import (
	"Reelhouse/internal/helpers"
	"errors"
	"github.com/sirupsen/logrus"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// HiddenFolders creates the reserved backup/script children of asset and
// shot leaves.
type HiddenFolders struct {
	log      logrus.FieldLogger
	onCreate func(path string)
}

func NewHiddenFolders(log logrus.FieldLogger, onCreate func(path string)) *HiddenFolders {
	if log == nil {
		log = discardLogger()
	}
	return &HiddenFolders{log: log, onCreate: onCreate}
}

// EnsureHiddenChildren creates "___backup" and "___script" under leaf if they
// are missing and marks both hidden. A failed attribute change is logged and
// never undoes the directory.
func (h *HiddenFolders) EnsureHiddenChildren(leaf string) ([]string, error) {
	var created []string
	for _, name := range []string{helpers.BackupFolder, helpers.ScriptFolder} {
		path := filepath.Join(leaf, name)
		if !helpers.DirExists(path) {
			err := os.Mkdir(path, os.ModePerm)
			switch {
			case err == nil:
				created = append(created, path)
				if h.onCreate != nil {
					h.onCreate(path)
				}
			case errors.Is(err, fs.ErrExist):
			default:
				return created, err
			}
		}
		if err := helpers.SetHidden(path); err != nil {
			h.log.WithFields(logrus.Fields{
				"path":  path,
				"error": err.Error(),
			}).Warn("Failed to set hidden attribute")
		}
	}
	return created, nil
}

// Repair walks root and ensures the hidden children on every reserved-marked
// directory that is not itself a hidden child.
func (h *HiddenFolders) Repair(root string) ([]string, error) {
	var created []string
	var errs []error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		name := d.Name()
		if helpers.IsHiddenChild(name) {
			return filepath.SkipDir
		}
		if helpers.IsReserved(name) {
			made, err := h.EnsureHiddenChildren(path)
			created = append(created, made...)
			if err != nil {
				errs = append(errs, err)
			}
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return created, errors.Join(errs...)
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
