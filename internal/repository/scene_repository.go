package repository

import (
	"Reelhouse/internal/models"
	"errors"
	"gorm.io/gorm"
)

type SceneRepository interface {
	GenericRepository[models.Scene]
	FindByProject(projectID uint) ([]models.Scene, error)
	// MergeShotCounts raises each scene's shot count to the given value; it
	// never lowers one.
	MergeShotCounts(projectID uint, counts map[int]int) error
}

type SceneRepositoryImpl[T models.Scene] struct {
	GenericRepository[models.Scene]
	db *gorm.DB
}

func NewSceneRepository(db *gorm.DB) SceneRepository {
	return &SceneRepositoryImpl[models.Scene]{
		GenericRepository: NewGenericRepository[models.Scene](db),
		db:                db,
	}
}

func (r *SceneRepositoryImpl[T]) FindByProject(projectID uint) ([]models.Scene, error) {
	var scenes []models.Scene
	err := r.db.Where("project_id = ?", projectID).Order("number").Find(&scenes).Error
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

func (r *SceneRepositoryImpl[T]) MergeShotCounts(projectID uint, counts map[int]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for number, shots := range counts {
			if shots < 0 {
				shots = 0
			}
			var scene models.Scene
			err := tx.Where("project_id = ? AND number = ?", projectID, number).First(&scene).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				scene = models.Scene{ProjectID: projectID, Number: number, ShotCount: shots}
				if err := tx.Create(&scene).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if shots > scene.ShotCount {
				if err := tx.Model(&scene).Update("shot_count", shots).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
