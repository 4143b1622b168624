package dto

import (
	"time"

	"github.com/samsara-collective/circle-api/internal/models"
)

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID          uint64                   `json:"id"`
	ProjectID   uint64                   `json:"project_id"`
	ApplicantID uint64                   `json:"applicant_id"`
	Message     string                   `json:"message"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	ResolvedAt  *time.Time               `json:"resolved_at,omitempty"`
	Applicant   *MemberDTO               `json:"applicant,omitempty"`
}

// ToApplicationDTO converts an Application model to ApplicationDTO
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:          app.ID,
		ProjectID:   app.ProjectID,
		ApplicantID: app.ApplicantID,
		Message:     app.Message,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		ResolvedAt:  app.ResolvedAt,
	}

	// Include applicant if preloaded
	if app.Applicant.ID != 0 {
		applicant := ToMemberDTO(app.Applicant)
		dto.Applicant = &applicant
	}

	return dto
}

// ToApplicationDTOs converts an application slice
func ToApplicationDTOs(apps []models.Application) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(apps))
	for i, a := range apps {
		dtos[i] = ToApplicationDTO(a)
	}
	return dtos
}
