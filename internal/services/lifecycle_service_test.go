package services

import (
	"Reelhouse/internal/helpers"
	"Reelhouse/internal/layout"
	"Reelhouse/internal/models"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shotFile = "ANIMATION/Finals/SCENE_1/__Shot_1/anim_scene_1_shot_1.ma"

func historyOf(version string) string {
	return "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/anim_scene_1_shot_1_v-" + version + ".ma"
}

func setupLifecycle(t *testing.T) (*testEnv, *models.Project) {
	t.Helper()
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)
	writeFile(t, filepath.Join(project.Path, filepath.FromSlash(shotFile)), "first\n")
	return env, project
}

func abs(project *models.Project, rel string) string {
	return filepath.Join(project.Path, filepath.FromSlash(rel))
}

func TestCreateVariation_IsAdditive(t *testing.T) {
	env, project := setupLifecycle(t)

	snapshot, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Version)
	assert.Equal(t, historyOf("0"), snapshot.HistoryPath)
	assert.Equal(t, shotFile, snapshot.ActivePath)
	assert.Equal(t, "anim", snapshot.Category)
	assert.Equal(t, "__Shot_1", snapshot.Folder)
	assert.Equal(t, models.SnapshotActionVariation, snapshot.Action)
	assert.Len(t, snapshot.SHA256, 64)
	assert.Equal(t, int64(len("first\n")), snapshot.Size)

	writeFile(t, abs(project, shotFile), "second\n")
	snapshot, err = env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Version)

	assert.Equal(t, "first\n", readFile(t, abs(project, historyOf("0"))))
	assert.Equal(t, "second\n", readFile(t, abs(project, historyOf("1"))))
	assert.Equal(t, "second\n", readFile(t, abs(project, shotFile)))

	rows, err := env.snapshots.FindByActivePath(project.ID, shotFile)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCreateVariation_ContinuesAfterHighestVersion(t *testing.T) {
	env, project := setupLifecycle(t)
	writeFile(t, abs(project, historyOf("17")), "old\n")
	writeFile(t, abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/other_v-40.ma"), "other\n")

	snapshot, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	assert.Equal(t, 18, snapshot.Version)
	assert.Equal(t, "old\n", readFile(t, abs(project, historyOf("17"))))
}

func TestCreateVariation_RecreatesMissingBackupFolder(t *testing.T) {
	env, project := setupLifecycle(t)
	require.NoError(t, os.RemoveAll(abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup")))

	_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	assert.FileExists(t, abs(project, historyOf("0")))
}

func TestCreateVariation_MissingActiveFile(t *testing.T) {
	env, project := setupLifecycle(t)
	missing := "ANIMATION/Finals/SCENE_1/__Shot_1/nothing.ma"

	_, err := env.lifecycle.CreateVariation(project.ID, missing)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	names, err := os.ReadDir(abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup"))
	require.NoError(t, err)
	assert.Empty(t, names)
	rows, err := env.snapshots.FindByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateVariation_RejectsBadPaths(t *testing.T) {
	env, project := setupLifecycle(t)

	for _, path := range []string{"", "../Other/file.ma", "/etc/passwd", "ANIMATION/../../x.ma"} {
		_, err := env.lifecycle.CreateVariation(project.ID, path)
		assert.True(t, errors.Is(err, ErrInvalidInput), path)
	}
	_, err := env.lifecycle.CreateVariation(project.ID, historyOf("0"))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = env.lifecycle.CreateVariation(99, shotFile)
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestCreateVariation_OnlyInsideLeaves(t *testing.T) {
	env, project := setupLifecycle(t)
	outside := []string{
		"ANIMATION/Finals/notes.ma",
		"ANIMATION/Finals/SCENE_1/notes.ma",
		"top.ma",
		"ANIMATION/Finals/SCENE_1/__Shot_1/___script/referencing.mel",
	}
	for _, path := range outside {
		writeFile(t, abs(project, path), "x\n")
		_, err := env.lifecycle.CreateVariation(project.ID, path)
		assert.True(t, errors.Is(err, ErrInvalidInput), path)
	}
	assert.NoDirExists(t, abs(project, "ANIMATION/Finals/"+helpers.BackupFolder))
	assert.NoDirExists(t, abs(project, "ANIMATION/Finals/SCENE_1/"+helpers.BackupFolder))
	assert.NoDirExists(t, abs(project, helpers.BackupFolder))

	writeFile(t, abs(project, "ANIMATION/Finals/___backup/notes_v-0.ma"), "x\n")
	_, err := env.lifecycle.SetActive(project.ID, "ANIMATION/Finals/___backup/notes_v-0.ma", false)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.NoFileExists(t, abs(project, "ANIMATION/Finals/notes_v-0.ma"))
	require.NoError(t, os.RemoveAll(abs(project, "ANIMATION/Finals/___backup")))
	require.NoError(t, os.Remove(abs(project, "ANIMATION/Finals/notes.ma")))
	require.NoError(t, os.Remove(abs(project, "ANIMATION/Finals/SCENE_1/notes.ma")))
	require.NoError(t, os.Remove(abs(project, "top.ma")))

	env.projects.CloseSession(project.ID)
	_, err = env.projects.AddScenes(project.ID, layout.SceneShotMap{2: 1})
	require.NoError(t, err)
	assert.DirExists(t, abs(project, "ANIMATION/Finals/SCENE_2/__Shot_1"))
}

func TestSetActive_ReplacesActiveContent(t *testing.T) {
	env, project := setupLifecycle(t)
	_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	writeFile(t, abs(project, shotFile), "unsaved work\n")

	snapshot, err := env.lifecycle.SetActive(project.ID, historyOf("0"), false)
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotActionActivate, snapshot.Action)
	assert.Equal(t, 0, snapshot.Version)
	assert.Equal(t, "first\n", readFile(t, abs(project, shotFile)))

	// the replaced content is gone, and no history was added
	history, err := env.lifecycle.History(project.ID, shotFile)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "first\n", readFile(t, abs(project, historyOf("0"))))
}

func TestSetActive_BackupFirst(t *testing.T) {
	env, project := setupLifecycle(t)
	_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	writeFile(t, abs(project, shotFile), "unsaved work\n")

	_, err = env.lifecycle.SetActive(project.ID, historyOf("0"), true)
	require.NoError(t, err)
	assert.Equal(t, "first\n", readFile(t, abs(project, shotFile)))
	assert.Equal(t, "unsaved work\n", readFile(t, abs(project, historyOf("1"))))

	rows, err := env.snapshots.FindByActivePath(project.ID, shotFile)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.SnapshotActionVariation, rows[1].Action)
	assert.Equal(t, models.SnapshotActionActivate, rows[2].Action)
}

func TestSetActive_RestoresMissingActiveFile(t *testing.T) {
	env, project := setupLifecycle(t)
	_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	require.NoError(t, os.Remove(abs(project, shotFile)))

	_, err = env.lifecycle.SetActive(project.ID, historyOf("0"), true)
	require.NoError(t, err)
	assert.Equal(t, "first\n", readFile(t, abs(project, shotFile)))
}

func TestSetActive_Rejects(t *testing.T) {
	env, project := setupLifecycle(t)

	_, err := env.lifecycle.SetActive(project.ID, shotFile, false)
	assert.True(t, errors.Is(err, ErrNotHistoryFile))

	writeFile(t, abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/notes.ma"), "x")
	_, err = env.lifecycle.SetActive(project.ID, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/notes.ma", false)
	assert.True(t, errors.Is(err, ErrNotHistoryFile))

	_, err = env.lifecycle.SetActive(project.ID, historyOf("5"), false)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "first\n", readFile(t, abs(project, shotFile)))
}

func TestSetActive_UsesLastVersionDelimiter(t *testing.T) {
	env, project := setupLifecycle(t)
	history := "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/test_v-19_v-2.ma"
	writeFile(t, abs(project, history), "nested\n")

	snapshot, err := env.lifecycle.SetActive(project.ID, history, false)
	require.NoError(t, err)
	assert.Equal(t, "test_v-19", snapshot.BaseName)
	assert.Equal(t, 2, snapshot.Version)
	assert.Equal(t, "nested\n", readFile(t, abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/test_v-19.ma")))
}

func TestHistory(t *testing.T) {
	env, project := setupLifecycle(t)
	for i := 0; i < 3; i++ {
		_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
		require.NoError(t, err)
	}
	writeFile(t, abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/anim_scene_1_shot_1_v-9.mb"), "other ext")
	writeFile(t, abs(project, "ANIMATION/Finals/SCENE_1/__Shot_1/___backup/anim_scene_1_shot_1_v-x.ma"), "no version")

	history, err := env.lifecycle.History(project.ID, shotFile)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, entry := range history {
		assert.Equal(t, i, entry.Version)
		assert.Equal(t, int64(len("first\n")), entry.Size)
	}
	assert.Equal(t, historyOf("2"), history[2].Path)

	history, err = env.lifecycle.History(project.ID, "ANIMATION/Finals/SCENE_1/__Shot_2/none.ma")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDiff(t *testing.T) {
	env, project := setupLifecycle(t)
	writeFile(t, abs(project, shotFile), "a\nold\nc\n")
	_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
	require.NoError(t, err)
	writeFile(t, abs(project, shotFile), "a\nnew\nc\n")

	diff, err := env.lifecycle.Diff(project.ID, historyOf("0"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- "+historyOf("0")), diff)
	assert.Contains(t, diff, "+++ "+shotFile)
	assert.Contains(t, diff, "-old\n")
	assert.Contains(t, diff, "+new\n")

	_, err = env.lifecycle.Diff(project.ID, shotFile)
	assert.True(t, errors.Is(err, ErrNotHistoryFile))
}

func TestResolveFile(t *testing.T) {
	env, project := setupLifecycle(t)

	path, err := env.lifecycle.ResolveFile(project.ID, "rig_char", "__hero", "rig_char_hero.ma", false)
	require.NoError(t, err)
	assert.Equal(t, "SETUP/Characters/Rigged/__hero/rig_char_hero.ma", path)

	path, err = env.lifecycle.ResolveFile(project.ID, "rig_char", "__hero", "rig_char_hero_v-3.ma", true)
	require.NoError(t, err)
	assert.Equal(t, "SETUP/Characters/Rigged/__hero/"+helpers.BackupFolder+"/rig_char_hero_v-3.ma", path)

	_, err = env.lifecycle.ResolveFile(project.ID, "sculpt", "__hero", "x.ma", false)
	assert.True(t, errors.Is(err, ErrCategoryNotProvisioned))

	_, err = env.lifecycle.ResolveFile(project.ID, "rig_char", "../..", "x.ma", false)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestResolveFile_UnprovisionedCategory(t *testing.T) {
	env, project := setupLifecycle(t)
	require.NoError(t, os.RemoveAll(abs(project, "SETUP/Characters/Rigged")))
	_, err := env.projects.Rescan(project.ID)
	require.NoError(t, err)

	_, err = env.lifecycle.ResolveFile(project.ID, "rig_char", "__hero", "rig_char_hero.ma", false)
	assert.True(t, errors.Is(err, ErrCategoryNotProvisioned))
}

func TestSearchSnapshots(t *testing.T) {
	env, project := setupLifecycle(t)
	for i := 0; i < 3; i++ {
		_, err := env.lifecycle.CreateVariation(project.ID, shotFile)
		require.NoError(t, err)
	}
	_, err := env.lifecycle.SetActive(project.ID, historyOf("1"), false)
	require.NoError(t, err)

	rows, err := env.lifecycle.SearchSnapshots("action eq 'variation' and version ge '1'", "version desc", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Version)

	rows, err = env.lifecycle.SearchSnapshots("", "", 2, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Version)

	_, err = env.lifecycle.SearchSnapshots("password eq 'x'", "", 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
