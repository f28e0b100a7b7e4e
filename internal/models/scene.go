package models

// Scene is one entry of a project's running scene/shot plan.
type Scene struct {
	BaseModel
	ProjectID uint `gorm:"index;uniqueIndex:idx_project_scene" json:"project_id"`
	Number    int  `gorm:"not null;uniqueIndex:idx_project_scene" json:"number"`
	ShotCount int  `gorm:"default:0" json:"shot_count"`
}
