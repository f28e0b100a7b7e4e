package models

type Project struct {
	BaseModel
	Name   string  `gorm:"type:varchar(255);not null;unique" json:"name"`
	Path   string  `gorm:"type:text;not null" json:"path"`
	Scenes []Scene `gorm:"foreignKey:ProjectID" json:"scenes,omitempty"`
}
