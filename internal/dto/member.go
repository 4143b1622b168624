package dto

import (
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/services"
)

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Archetype string `json:"archetype,omitempty"`
}

// ProfileDTO represents the full profile of a member
type ProfileDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username"`
	Archetype string `json:"archetype"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	LinkURL   string `json:"link_url"`
	ResumeURL string `json:"resume_url"`
}

// MemberProjectDTO is one entry of a member's project list: the projects
// they created and the ones they contribute to.
type MemberProjectDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Realm string `json:"realm"`
	Role  string `json:"role"`
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:        member.ID,
		Username:  member.Username,
		Archetype: member.Archetype,
	}
}

// ToProfileDTO converts a Member model to ProfileDTO. The email is only
// included for the member's own view.
func ToProfileDTO(member models.Member, includeEmail bool) ProfileDTO {
	dto := ProfileDTO{
		ID:        member.ID,
		Username:  member.Username,
		Archetype: member.Archetype,
		Bio:       member.Bio,
		AvatarURL: member.AvatarURL,
		LinkURL:   member.LinkURL,
		ResumeURL: member.ResumeURL,
	}
	if includeEmail {
		dto.Email = member.Email
	}
	return dto
}

// ToProfileDTOs converts a member slice to public profiles
func ToProfileDTOs(members []models.Member) []ProfileDTO {
	dtos := make([]ProfileDTO, len(members))
	for i, m := range members {
		dtos[i] = ToProfileDTO(m, false)
	}
	return dtos
}

// ToMemberProjectDTO converts a service project-list item to its DTO
func ToMemberProjectDTO(item services.MemberProjectItem) MemberProjectDTO {
	return MemberProjectDTO{
		ID:    item.Project.ID,
		Title: item.Project.Title,
		Realm: item.Project.Realm,
		Role:  item.Role,
	}
}

// ToMemberProjectDTOs converts a member project-list slice
func ToMemberProjectDTOs(items []services.MemberProjectItem) []MemberProjectDTO {
	dtos := make([]MemberProjectDTO, len(items))
	for i, item := range items {
		dtos[i] = ToMemberProjectDTO(item)
	}
	return dtos
}
