package mapper

import (
	"Reelhouse/internal/index"
	"Reelhouse/internal/models"
	"Reelhouse/internal/services"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToProjectGetDTO(t *testing.T) {
	project := &models.Project{
		BaseModel: models.BaseModel{ID: 3},
		Name:      "Ocean",
		Path:      "/shows/Ocean",
		Scenes:    []models.Scene{{Number: 1, ShotCount: 4}, {Number: 2, ShotCount: 1}},
	}
	projectDTO := ToProjectGetDTO(project)
	assert.Equal(t, uint(3), projectDTO.ID)
	assert.Equal(t, "Ocean", projectDTO.Name)
	assert.Len(t, projectDTO.Scenes, 2)
	assert.Equal(t, 4, projectDTO.Scenes[0].ShotCount)

	assert.Nil(t, ToProjectGetDTO(nil))
	assert.Empty(t, ToProjectGetDTOs(nil))
}

func TestToProvisionDTO_Partial(t *testing.T) {
	result := &services.ProvisionResult{
		Project: &models.Project{Name: "Ocean"},
		Created: []string{"a", "b"},
	}
	provisionDTO := ToProvisionDTO(result, errors.New("shots: permission denied"))
	assert.Equal(t, "Ocean", provisionDTO.Project.Name)
	assert.Equal(t, []string{"a", "b"}, provisionDTO.Created)
	assert.NotNil(t, provisionDTO.Seeded)
	assert.Equal(t, "shots: permission denied", provisionDTO.Error)

	provisionDTO = ToProvisionDTO(nil, nil)
	assert.Nil(t, provisionDTO.Project)
	assert.Empty(t, provisionDTO.Error)
}

func TestToCategoryHomeDTOs(t *testing.T) {
	homeDTOs := ToCategoryHomeDTOs([]services.CategoryHome{
		{Key: "anim", Kind: index.KindShot, Path: "/shows/Ocean/ANIMATION/Finals"},
		{Key: "rig_char", Kind: index.KindAsset, Path: "/shows/Ocean/SETUP/Characters/Rigged"},
	})
	assert.Equal(t, "shot", homeDTOs[0].Kind)
	assert.Equal(t, "asset", homeDTOs[1].Kind)
}

func TestToFolderResultDTO(t *testing.T) {
	resultDTO := ToFolderResultDTO(&services.FolderResult{
		Kind:    services.FolderProps,
		Folders: []string{"MODEL/Props/High_Resolution/__chair"},
	}, nil)
	assert.Equal(t, "props", resultDTO.Kind)
	assert.Len(t, resultDTO.Folders, 1)
	assert.NotNil(t, resultDTO.Created)
	assert.Empty(t, resultDTO.Error)
}

func TestToSnapshotGetDTOs(t *testing.T) {
	snapshotDTOs := ToSnapshotGetDTOs([]models.Snapshot{
		{BaseModel: models.BaseModel{ID: 1}, BaseName: "rig_char_hero", Version: 2, Action: models.SnapshotActionVariation},
	})
	assert.Len(t, snapshotDTOs, 1)
	assert.Equal(t, "rig_char_hero", snapshotDTOs[0].BaseName)
	assert.Equal(t, "variation", snapshotDTOs[0].Action)
}
