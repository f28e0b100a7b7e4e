package models

const (
	SnapshotActionVariation = "variation"
	SnapshotActionActivate  = "activate"
)

// Snapshot records one file lifecycle operation: a new history version of an
// active file, or a history version promoted back to active.
type Snapshot struct {
	BaseModel
	ProjectID   uint   `gorm:"index" json:"project_id"`
	Category    string `gorm:"type:varchar(64);index" json:"category,omitempty"`
	Folder      string `gorm:"type:varchar(255)" json:"folder"`
	BaseName    string `gorm:"type:varchar(255);not null" json:"base_name"`
	Extension   string `gorm:"type:varchar(32)" json:"extension"`
	Version     int    `gorm:"not null" json:"version"`
	ActivePath  string `gorm:"type:text;not null" json:"active_path"`
	HistoryPath string `gorm:"type:text;not null" json:"history_path"`
	Action      string `gorm:"type:varchar(16);not null" json:"action"`
	SHA256      string `gorm:"type:char(64)" json:"sha256,omitempty"`
	Size        int64  `gorm:"default:0" json:"size"`
}
