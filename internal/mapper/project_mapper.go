package mapper

import (
	"Reelhouse/internal/dto"
	"Reelhouse/internal/models"
	"Reelhouse/internal/services"
)

func ToProjectGetDTO(project *models.Project) *dto.ProjectGetDTO {
	if project == nil {
		return nil
	}
	scenes := make([]dto.SceneGetDTO, 0, len(project.Scenes))
	for _, scene := range project.Scenes {
		scenes = append(scenes, dto.SceneGetDTO{Number: scene.Number, ShotCount: scene.ShotCount})
	}
	return &dto.ProjectGetDTO{
		ID:        project.ID,
		Name:      project.Name,
		Path:      project.Path,
		CreatedAt: project.CreatedAt,
		Scenes:    scenes,
	}
}

func ToProjectGetDTOs(projects []models.Project) []dto.ProjectGetDTO {
	projectDTOs := make([]dto.ProjectGetDTO, 0, len(projects))
	for i := range projects {
		projectDTOs = append(projectDTOs, *ToProjectGetDTO(&projects[i]))
	}
	return projectDTOs
}

// ToProvisionDTO maps a possibly partial result; err becomes the Error field.
func ToProvisionDTO(result *services.ProvisionResult, err error) *dto.ProvisionDTO {
	provisionDTO := &dto.ProvisionDTO{Created: []string{}, Seeded: []string{}}
	if result != nil {
		provisionDTO.Project = ToProjectGetDTO(result.Project)
		if result.Created != nil {
			provisionDTO.Created = result.Created
		}
		if result.Seeded != nil {
			provisionDTO.Seeded = result.Seeded
		}
	}
	if err != nil {
		provisionDTO.Error = err.Error()
	}
	return provisionDTO
}

func ToCategoryHomeDTOs(homes []services.CategoryHome) []dto.CategoryHomeDTO {
	homeDTOs := make([]dto.CategoryHomeDTO, 0, len(homes))
	for _, home := range homes {
		homeDTOs = append(homeDTOs, dto.CategoryHomeDTO{
			Key:  home.Key,
			Kind: home.Kind.String(),
			Path: home.Path,
		})
	}
	return homeDTOs
}
