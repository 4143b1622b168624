package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a pending request to join a project in application mode.
// Approved and rejected are terminal: a resolved application never
// transitions again.
type Application struct {
	ID          uint64            `gorm:"primarykey" json:"id"`
	ProjectID   uint64            `gorm:"not null;index" json:"project_id"`
	ApplicantID uint64            `gorm:"not null;index" json:"applicant_id"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Realm       string            `gorm:"type:varchar(64);not null;index" json:"realm"`
	ResolvedAt  *time.Time        `json:"resolved_at"`
	CreatedAt   time.Time         `json:"created_at"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Applicant Member  `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
