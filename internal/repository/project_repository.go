package repository

import (
	"Reelhouse/internal/models"
	"errors"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	GenericRepository[models.Project]
	FindByName(name string) (*models.Project, error)
	FindWithScenes(id uint) (*models.Project, error)
}

type ProjectRepositoryImpl[T models.Project] struct {
	GenericRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl[models.Project]{
		GenericRepository: NewGenericRepository[models.Project](db),
		db:                db,
	}
}

// FindByName returns nil, nil when no project has that name.
func (r *ProjectRepositoryImpl[T]) FindByName(name string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("name = ?", name).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl[T]) FindWithScenes(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Scenes", func(db *gorm.DB) *gorm.DB {
		return db.Order("number")
	}).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}
