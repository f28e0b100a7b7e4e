package dto

import "time"

type ProjectGetDTO struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	CreatedAt time.Time     `json:"created_at"`
	Scenes    []SceneGetDTO `json:"scenes,omitempty"`
}

type SceneGetDTO struct {
	Number    int `json:"number"`
	ShotCount int `json:"shot_count"`
}

// ProvisionDTO reports a project creation or scene growth. Error is set when
// only part of the work succeeded.
type ProvisionDTO struct {
	Project *ProjectGetDTO `json:"project,omitempty"`
	Created []string       `json:"created"`
	Seeded  []string       `json:"seeded"`
	Error   string         `json:"error,omitempty"`
}

type CategoryHomeDTO struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
	Path string `json:"path"`
}
