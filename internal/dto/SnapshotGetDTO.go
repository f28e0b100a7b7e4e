package dto

import "time"

type SnapshotGetDTO struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	Category    string    `json:"category,omitempty"`
	Folder      string    `json:"folder"`
	BaseName    string    `json:"base_name"`
	Extension   string    `json:"extension"`
	Version     int       `json:"version"`
	ActivePath  string    `json:"active_path"`
	HistoryPath string    `json:"history_path"`
	Action      string    `json:"action"`
	SHA256      string    `json:"sha256"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryEntryDTO struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Version    int       `json:"version"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

type FolderResultDTO struct {
	Kind    string   `json:"kind"`
	Folders []string `json:"folders"`
	Created []string `json:"created"`
	Seeded  []string `json:"seeded"`
	Error   string   `json:"error,omitempty"`
}
