package services

import (
	"Reelhouse/internal/config"
	"Reelhouse/internal/helpers"
	"Reelhouse/internal/layout"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFolders_Character(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)

	result, err := env.assets.CreateFolders(project.ID, FolderCharacter, []string{"hero"})
	require.NoError(t, err)
	assert.Equal(t, FolderCharacter, result.Kind)
	assert.Len(t, result.Folders, 7)
	// seven folders with two hidden children each
	assert.Len(t, result.Created, 21)
	assert.ElementsMatch(t, []string{
		"MODEL/Characters/High_Resolution/__hero/geo_hi_char_hero.ma",
		"MODEL/Characters/Low_Resolution/__hero/geo_low_char_hero.ma",
		"SETUP/Characters/Deformed/__hero/def_char_hero.ma",
		"SETUP/Characters/Rigged/__hero/rig_char_hero.ma",
		"SURFACING/Shaders/Characters/__hero/surf_char_hero.ma",
		"LIGHTING/Templates/Characters/__hero/ligtemp_char_hero.ma",
	}, result.Seeded)

	hero := filepath.Join(project.Path, "SURFACING", "Textures", "Characters", "__hero")
	assert.DirExists(t, filepath.Join(hero, helpers.BackupFolder))
	assert.DirExists(t, filepath.Join(hero, helpers.ScriptFolder))

	rig := strings.SplitAfter(readFile(t, filepath.Join(project.Path, "SETUP", "Characters", "Rigged", "__hero", "rig_char_hero.ma")), "\n")
	source := filepath.ToSlash(filepath.Join(project.Path, "MODEL", "Characters", "Low_Resolution", "__hero", "geo_low_char_hero.ma"))
	require.Greater(t, len(rig), 6)
	assert.Equal(t, `requires maya "2018";`+"\n", rig[3])
	assert.Contains(t, rig[4], `file -rdi 1 -ns "geo_low_char_hero"`)
	assert.Contains(t, rig[4], source)
	assert.Contains(t, rig[5], `file -r -ns "geo_low_char_hero"`)

	geo := readFile(t, filepath.Join(project.Path, "MODEL", "Characters", "High_Resolution", "__hero", "geo_hi_char_hero.ma"))
	assert.NotContains(t, geo, "file -r")
}

func TestCreateFolders_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)
	_, err := env.assets.CreateFolders(project.ID, FolderProps, []string{"chair"})
	require.NoError(t, err)
	rig := filepath.Join(project.Path, "SETUP", "Props", "Rigged", "__chair", "rig_props_chair.ma")
	writeFile(t, rig, "rigged by hand\n")

	result, err := env.assets.CreateFolders(project.ID, FolderProps, []string{"__chair"})
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Seeded)
	assert.Len(t, result.Folders, 6)
	assert.Equal(t, "rigged by hand\n", readFile(t, rig))
}

func TestCreateFolders_SeveralNames(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)

	result, err := env.assets.CreateFolders(project.ID, FolderComponent, []string{"rock", "tree"})
	require.NoError(t, err)
	assert.Len(t, result.Folders, 8)
	assert.FileExists(t, filepath.Join(project.Path, "MODEL", "Environments", "High_Resolution", "Components", "__tree", "geo_hi_com_tree.ma"))
	assert.FileExists(t, filepath.Join(project.Path, "SURFACING", "Shaders", "Components", "__rock", "surf_com_rock.ma"))
}

func TestCreateFolders_FolderOnlyKinds(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)

	for kind, path := range map[FolderKind]string{
		FolderRenderTemplate: "LIGHTING/Templates/Rendering/__night",
		FolderCharDesign:     "2D/Concept_Design/Characters/__night",
		FolderEnvDesign:      "2D/Concept_Design/Environments/__night",
		FolderContinuity:     "2D/Continuities/__night",
	} {
		result, err := env.assets.CreateFolders(project.ID, kind, []string{"night"})
		require.NoError(t, err, kind)
		assert.Equal(t, []string{path}, result.Folders)
		assert.Empty(t, result.Seeded)
		assert.DirExists(t, filepath.Join(project.Path, filepath.FromSlash(path), helpers.BackupFolder))
	}
}

func TestCreateFolders_Rejects(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "Ocean", nil)

	_, err := env.assets.CreateFolders(project.ID, FolderKind("vehicle"), []string{"car"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = env.assets.CreateFolders(project.ID, FolderProps, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = env.assets.CreateFolders(project.ID, FolderProps, []string{"a/b"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = env.assets.CreateFolders(99, FolderProps, []string{"chair"})
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestCreateFolders_MissingHomeFailsOnlyThatHome(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Configuration) {
		cfg.Layout.Template = layout.Template{Root: layout.NewGroup(
			layout.Named("MODEL", layout.NewGroup(layout.Named("Characters", layout.NewGroup(
				layout.Named("High_Resolution", layout.Dir("__char_name")),
				layout.Named("Low_Resolution", layout.Dir("__char_name")),
			)))),
			layout.Named("ANIMATION", layout.Dir("Finals")),
		)}
	})
	project := env.createProject(t, "Small", nil)

	result, err := env.assets.CreateFolders(project.ID, FolderCharacter, []string{"hero"})
	assert.True(t, errors.Is(err, ErrCategoryNotProvisioned))
	assert.ElementsMatch(t, []string{
		"MODEL/Characters/High_Resolution/__hero",
		"MODEL/Characters/Low_Resolution/__hero",
	}, result.Folders)
	assert.FileExists(t, filepath.Join(project.Path, "MODEL", "Characters", "High_Resolution", "__hero", "geo_hi_char_hero.ma"))
}

func TestFolderKinds(t *testing.T) {
	kinds := FolderKinds()
	assert.Len(t, kinds, 11)
	assert.Equal(t, FolderCharDesign, kinds[0])
}

func TestReferenceLines(t *testing.T) {
	lines := ReferenceLines(filepath.Join("show", "MODEL", "__hero", "geo_low_char_hero.ma"))
	require.Len(t, lines, 2)
	assert.Equal(t, "file -rdi 1 -ns \"geo_low_char_hero\" -rfn \"geo_low_char_heroRN\" -op \"v=0;\" -typ \"mayaAscii\" \"show/MODEL/__hero/geo_low_char_hero.ma\";\n", lines[0])
	assert.Equal(t, "file -r -ns \"geo_low_char_hero\" -dr 1 -rfn \"geo_low_char_heroRN\" -op \"v=0;\" -typ \"mayaAscii\" \"show/MODEL/__hero/geo_low_char_hero.ma\";\n", lines[1])
}
