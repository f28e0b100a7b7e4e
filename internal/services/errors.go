package services

import (
	"Reelhouse/internal/helpers"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectExists          = errors.New("project already exists")
	ErrCategoryNotProvisioned = errors.New("asset category not provisioned")
	ErrNotHistoryFile         = errors.New("not a history file")
	ErrInvalidInput           = errors.New("invalid input")
)

// validateFolderName accepts a single directory name.
func validateFolderName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidInput)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is not a folder name", ErrInvalidInput, name)
	case strings.ContainsAny(name, `/\:`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidInput, name)
	case helpers.IsHiddenChild(name):
		return fmt.Errorf("%w: %q uses the hidden folder marker", ErrInvalidInput, name)
	}
	return nil
}

// resolveInRoot turns a project-relative path into an absolute one and
// rejects anything that would leave root.
func resolveInRoot(root string, relative string) (string, error) {
	relative = strings.ReplaceAll(relative, "\\", "/")
	if relative == "" || filepath.IsAbs(filepath.FromSlash(relative)) || strings.HasPrefix(relative, "/") {
		return "", fmt.Errorf("%w: path must be relative to the project root", ErrInvalidInput)
	}
	abs := filepath.Join(root, filepath.FromSlash(relative))
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q leaves the project", ErrInvalidInput, relative)
	}
	return abs, nil
}

// relativeToRoot is the slash separated form of path below root.
func relativeToRoot(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
