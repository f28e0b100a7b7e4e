package layout

import (
	"Reelhouse/internal/helpers"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"io/fs"
	"os"
	"path/filepath"
)

// Report lists the directories an operation created, hidden children included.
type Report struct {
	Created []string
}

func (r *Report) add(paths ...string) {
	r.Created = append(r.Created, paths...)
}

// Expander materializes a template under an existing root directory.
//
// A directory that cannot be created or listed aborts only its own subtree:
// siblings are still expanded and every failure is returned joined.
type Expander struct {
	hidden   *HiddenFolders
	log      logrus.FieldLogger
	onCreate func(path string)
}

func NewExpander(hidden *HiddenFolders, log logrus.FieldLogger, onCreate func(path string)) *Expander {
	if log == nil {
		log = discardLogger()
	}
	if hidden == nil {
		hidden = NewHiddenFolders(log, onCreate)
	}
	return &Expander{hidden: hidden, log: log, onCreate: onCreate}
}

// Expand creates every directory of template below root that does not exist
// yet. root itself must already exist.
func (e *Expander) Expand(root string, template Node) (*Report, error) {
	report := &Report{}
	info, err := os.Stat(root)
	if err != nil {
		return report, err
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%s is not a directory", root)
	}
	err = e.expand(root, template, report)
	e.log.WithFields(logrus.Fields{
		"root":    root,
		"created": len(report.Created),
	}).Debug("template expanded")
	return report, err
}

func (e *Expander) expand(dir string, node Node, report *Report) error {
	switch n := node.(type) {
	case nil, Leaf:
		return nil
	case Sequence:
		var errs []error
		for _, item := range n.Items {
			if err := e.expand(dir, item, report); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	case Group:
		return e.expandGroup(dir, n, report)
	}
	return fmt.Errorf("unknown template node %T", node)
}

func (e *Expander) expandGroup(dir string, group Group, report *Report) error {
	existing, err := helpers.ListDirNames(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[name] = struct{}{}
	}

	var errs []error
	for _, entry := range group.Entries {
		path := filepath.Join(dir, entry.Name)
		if _, ok := present[entry.Name]; !ok {
			created, err := e.mkdir(path)
			if err != nil {
				e.log.WithFields(logrus.Fields{
					"path":  path,
					"error": err.Error(),
				}).Error("Failed to create template folder")
				errs = append(errs, err)
				continue
			}
			if created {
				report.add(path)
			}
			present[entry.Name] = struct{}{}
		}

		if helpers.IsReserved(entry.Name) && !helpers.IsHiddenChild(entry.Name) && IsEmpty(entry.Child) {
			made, err := e.hidden.EnsureHiddenChildren(path)
			report.add(made...)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		}

		if err := e.expand(path, entry.Child, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Expander) mkdir(path string) (bool, error) {
	err := os.Mkdir(path, os.ModePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if e.onCreate != nil {
		e.onCreate(path)
	}
	return true, nil
}
