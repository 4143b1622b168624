package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusOpen        ProjectStatus = "open"
	ProjectStatusApplication ProjectStatus = "application"
	ProjectStatusClosed      ProjectStatus = "closed"
)

// ValidProjectStatus reports whether s is one of the three settable statuses.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusApplication, ProjectStatusClosed:
		return true
	}
	return false
}

// Project is a community project node. Realm partitions projects into
// isolated communities; every query and mutation must carry it.
// Archived is terminal: an archived project is excluded from all listings
// and accepts no further status changes, joins, or applications.
type Project struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Timeline        string         `gorm:"type:varchar(255)" json:"timeline"`
	Status          ProjectStatus  `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	RolesNeeded     string         `gorm:"type:varchar(255)" json:"roles_needed"`
	ImageURL        string         `gorm:"type:varchar(512)" json:"image_url"`
	InspirationLink string         `gorm:"type:varchar(512)" json:"inspiration_link"`
	LunarNewYear    bool           `gorm:"not null;default:false" json:"lunar_new_year"`
	CreatedBy       uint64         `gorm:"not null;index" json:"created_by"`
	Realm           string         `gorm:"type:varchar(64);not null;index" json:"realm"`
	Archived        bool           `gorm:"not null;default:false" json:"archived"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator      Member        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID" json:"contributors,omitempty"`
	Applications []Application `gorm:"foreignKey:ProjectID" json:"applications,omitempty"`
}
