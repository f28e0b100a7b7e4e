package services

import (
	"Reelhouse/internal/helpers"
	"fmt"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"strings"
)

// ReferenceScriptName is written into the "___script" folder next to the
// referenced file.
const ReferenceScriptName = "referencing.mel"

type ScriptService interface {
	WriteReferenceScript(projectID uint, path string, count int) (string, error)
}

type scriptServiceImpl struct {
	projectService ProjectService
	logService     LogService
}

func NewScriptService(projectService ProjectService, logService LogService) ScriptService {
	return &scriptServiceImpl{projectService: projectService, logService: logService}
}

// WriteReferenceScript replaces "<leaf>/___script/referencing.mel" with count
// reference commands for the scene file at path and returns the script's
// project-relative path. Namespaces get a 1..count suffix when count > 1.
func (s *scriptServiceImpl) WriteReferenceScript(projectID uint, path string, count int) (string, error) {
	if count < 1 {
		count = 1
	}
	session, err := s.projectService.OpenSession(projectID)
	if err != nil {
		return "", err
	}
	sceneFile, err := resolveInRoot(session.Root, path)
	if err != nil {
		return "", err
	}
	if !helpers.FileExists(sceneFile) {
		return "", fmt.Errorf("scene file %s: %w", path, os.ErrNotExist)
	}

	session.Lock()
	defer session.Unlock()

	scriptDir := filepath.Join(filepath.Dir(sceneFile), helpers.ScriptFolder)
	if helpers.IsHiddenChild(filepath.Base(filepath.Dir(sceneFile))) {
		scriptDir = filepath.Join(filepath.Dir(filepath.Dir(sceneFile)), helpers.ScriptFolder)
	}
	if err := os.MkdirAll(scriptDir, os.ModePerm); err != nil {
		return "", err
	}
	if err := helpers.SetHidden(scriptDir); err != nil {
		session.log.WithField("error", err.Error()).Warn("Failed to set hidden attribute")
	}
	script := filepath.Join(scriptDir, ReferenceScriptName)
	if err := helpers.WriteFileAtomic(script, []byte(ReferenceScript(sceneFile, count)), 0o644); err != nil {
		return "", err
	}
	session.log.WithFields(logrus.Fields{
		"job":   "reference",
		"path":  relativeToRoot(session.Root, sceneFile),
		"count": count,
	}).Info("reference script written")
	return relativeToRoot(session.Root, script), nil
}

// ReferenceScript builds count reference commands for sceneFile.
func ReferenceScript(sceneFile string, count int) string {
	namespace, _ := helpers.SplitExtension(filepath.Base(sceneFile))
	target := helpers.ToHostSeparators(sceneFile)
	var b strings.Builder
	for i := 1; i <= count; i++ {
		ns := namespace
		if count >= 2 {
			ns = fmt.Sprintf("%s%d", namespace, i)
		}
		fmt.Fprintf(&b, "file -r -type \"mayaAscii\"  -ignoreVersion -gl -mergeNamespacesOnClash false -namespace \"%s\" -options \"v=0;\" \"%s\";\n", ns, target)
	}
	return b.String()
}
