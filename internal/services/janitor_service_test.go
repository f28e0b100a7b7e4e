package services

import (
	"Reelhouse/internal/helpers"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_RunCleanCycleRepairsProjects(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProject(t, "Ocean", nil)
	second := env.createProject(t, "Desert", nil)
	lost := []string{
		filepath.Join(first.Path, "SETUP", "Characters", "Rigged", "__char_name", helpers.ScriptFolder),
		filepath.Join(second.Path, "ANIMATION", "Finals", "SCENE_1", "__Shot_1", helpers.BackupFolder),
	}
	for _, dir := range lost {
		require.NoError(t, os.RemoveAll(dir))
	}

	janitor := NewJanitorService(env.projects, env.logService, env.cfg)
	assert.False(t, janitor.IsCleaning())
	assert.NoError(t, janitor.RunCleanCycle())
	assert.False(t, janitor.IsCleaning())
	for _, dir := range lost {
		assert.DirExists(t, dir)
	}
}

func TestJanitor_RefusesOverlappingCycles(t *testing.T) {
	env := newTestEnv(t)
	janitor := NewJanitorService(env.projects, env.logService, env.cfg)
	require.True(t, janitor.begin())
	assert.Error(t, janitor.RunCleanCycle())
	assert.Error(t, janitor.ForceStartCleanCycle())
	janitor.end()
	assert.NoError(t, janitor.RunCleanCycle())
}

func TestJanitor_Schedule(t *testing.T) {
	env := newTestEnv(t)
	janitor := NewJanitorService(env.projects, env.logService, env.cfg)
	assert.NoError(t, janitor.StartCleanCycle())
	janitor.StopClean()

	env.cfg.Server.CleanConfig.Schedule = "not a schedule"
	janitor = NewJanitorService(env.projects, env.logService, env.cfg)
	assert.Error(t, janitor.StartCleanCycle())
}
