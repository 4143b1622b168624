package dto

import (
	"time"

	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID              uint64               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Timeline        string               `json:"timeline,omitempty"`
	Status          models.ProjectStatus `json:"status"`
	RolesNeeded     string               `json:"roles_needed,omitempty"`
	ImageURL        string               `json:"image_url,omitempty"`
	InspirationLink string               `json:"inspiration_link,omitempty"`
	LunarNewYear    bool                 `json:"lunar_new_year"`
	CreatedBy       uint64               `json:"created_by"`
	Realm           string               `json:"realm"`
	CreatedAt       time.Time            `json:"created_at"`
	Creator         *MemberDTO           `json:"creator,omitempty"`
}

// ProjectListItemDTO represents a project in listing responses. The
// pending-application count is present only on projects the viewer owns.
type ProjectListItemDTO struct {
	ProjectDTO
	PendingApplications *int64 `json:"pending_applications,omitempty"`
}

// ContributorDTO represents a contributor in API responses
type ContributorDTO struct {
	Member   MemberDTO `json:"member"`
	JoinedAt time.Time `json:"joined_at"`
}

// ProjectDetailDTO represents a full detail view of a project
type ProjectDetailDTO struct {
	ProjectDTO
	Contributors        []ContributorDTO      `json:"contributors"`
	ViewerAction        services.ViewerAction `json:"viewer_action"`
	PendingApplications *int64                `json:"pending_applications,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		Timeline:        project.Timeline,
		Status:          project.Status,
		RolesNeeded:     project.RolesNeeded,
		ImageURL:        project.ImageURL,
		InspirationLink: project.InspirationLink,
		LunarNewYear:    project.LunarNewYear,
		CreatedBy:       project.CreatedBy,
		Realm:           project.Realm,
		CreatedAt:       project.CreatedAt,
	}

	// Include creator if preloaded
	if project.Creator.ID != 0 {
		creator := ToMemberDTO(project.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToProjectListItemDTO converts a service list item to its DTO
func ToProjectListItemDTO(item services.ProjectListItem, viewerID uint64) ProjectListItemDTO {
	dto := ProjectListItemDTO{
		ProjectDTO: ToProjectDTO(item.Project),
	}
	if item.Project.CreatedBy == viewerID {
		count := item.PendingApplications
		dto.PendingApplications = &count
	}
	return dto
}

// ToContributorDTO converts a Contributor model to ContributorDTO
func ToContributorDTO(contributor models.Contributor) ContributorDTO {
	return ContributorDTO{
		Member:   ToMemberDTO(contributor.Member),
		JoinedAt: contributor.JoinedAt,
	}
}

// ToContributorDTOs converts a contributor slice
func ToContributorDTOs(contributors []models.Contributor) []ContributorDTO {
	dtos := make([]ContributorDTO, len(contributors))
	for i, c := range contributors {
		dtos[i] = ToContributorDTO(c)
	}
	return dtos
}

// ToProjectDetailDTO converts a service detail to its DTO
func ToProjectDetailDTO(detail *services.ProjectDetail, viewerID uint64) ProjectDetailDTO {
	dto := ProjectDetailDTO{
		ProjectDTO:   ToProjectDTO(detail.Project),
		Contributors: ToContributorDTOs(detail.Contributors),
		ViewerAction: detail.ViewerAction,
	}
	if detail.Project.CreatedBy == viewerID {
		count := detail.PendingApplications
		dto.PendingApplications = &count
	}
	return dto
}
