package repository

import (
	"Reelhouse/internal/models"
	"gorm.io/gorm"
)

type SnapshotRepository interface {
	GenericRepository[models.Snapshot]
	FindByActivePath(projectID uint, activePath string) ([]models.Snapshot, error)
	FindByProject(projectID uint) ([]models.Snapshot, error)
	SnapshotsSearch(
		whereClause string,
		args []interface{},
		order string,
		limit int,
		offset int,
	) ([]models.Snapshot, error)
}

type SnapshotRepositoryImpl[T models.Snapshot] struct {
	GenericRepository[models.Snapshot]
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &SnapshotRepositoryImpl[models.Snapshot]{
		GenericRepository: NewGenericRepository[models.Snapshot](db),
		db:                db,
	}
}

func (r *SnapshotRepositoryImpl[T]) FindByActivePath(projectID uint, activePath string) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.Where("project_id = ? AND active_path = ?", projectID, activePath).
		Order("id").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *SnapshotRepositoryImpl[T]) FindByProject(projectID uint) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.Where("project_id = ?", projectID).Order("id").Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *SnapshotRepositoryImpl[T]) SnapshotsSearch(
	whereClause string,
	args []interface{},
	order string,
	limit int,
	offset int,
) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	query := r.db.Model(&models.Snapshot{})
	if whereClause != "" {
		query = query.Where(whereClause, args...)
	}
	query = query.Order(order).
		Limit(limit).
		Offset(offset)
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
