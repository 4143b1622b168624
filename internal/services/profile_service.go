package services

import (
	"errors"
	"fmt"

	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"gorm.io/gorm"
)

// ProfileService handles member profile reads, edits, and the member-facing
// views of a realm: the directory and per-member project lists.
type ProfileService struct {
	memberRepo      repository.MemberRepository
	projectRepo     repository.ProjectRepository
	contributorRepo repository.ContributorRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	memberRepo repository.MemberRepository,
	projectRepo repository.ProjectRepository,
	contributorRepo repository.ContributorRepository,
) *ProfileService {
	return &ProfileService{
		memberRepo:      memberRepo,
		projectRepo:     projectRepo,
		contributorRepo: contributorRepo,
	}
}

// UpdateProfileInput carries optional profile edits; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Archetype *string
	Bio       *string
	LinkURL   *string
}

// UpdateProfile applies profile edits to the acting member.
func (s *ProfileService) UpdateProfile(memberID uint64, input UpdateProfileInput) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if input.Archetype != nil {
		member.Archetype = *input.Archetype
	}
	if input.Bio != nil {
		member.Bio = *input.Bio
	}
	if input.LinkURL != nil {
		member.LinkURL = *input.LinkURL
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return member, nil
}

// SetAvatarURL records an uploaded avatar on the member.
func (s *ProfileService) SetAvatarURL(memberID uint64, url string) (*models.Member, error) {
	return s.setMediaURL(memberID, func(m *models.Member) { m.AvatarURL = url })
}

// SetResumeURL records an uploaded resume on the member.
func (s *ProfileService) SetResumeURL(memberID uint64, url string) (*models.Member, error) {
	return s.setMediaURL(memberID, func(m *models.Member) { m.ResumeURL = url })
}

func (s *ProfileService) setMediaURL(memberID uint64, apply func(*models.Member)) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	apply(member)

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// GetPublicProfile returns a member for public display.
func (s *ProfileService) GetPublicProfile(memberID uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// RealmMembers lists the members active in a realm, oldest first: creators
// of its live projects and contributors on them. Only claimed profiles with
// an archetype are shown; an invite row or a half-filled profile has nothing
// to display yet.
func (s *ProfileService) RealmMembers(realm string) ([]models.Member, error) {
	creatorIDs, err := s.projectRepo.CreatorIDsByRealm(realm)
	if err != nil {
		return nil, fmt.Errorf("failed to list realm creators: %w", err)
	}

	contributorIDs, err := s.contributorRepo.MemberIDsByRealm(realm)
	if err != nil {
		return nil, fmt.Errorf("failed to list realm contributors: %w", err)
	}

	seen := make(map[uint64]bool, len(creatorIDs)+len(contributorIDs))
	ids := make([]uint64, 0, len(creatorIDs)+len(contributorIDs))
	for _, id := range append(creatorIDs, contributorIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	members, err := s.memberRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	visible := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m.Claimed() && m.Archetype != "" {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// Project roles in the member profile view.
const (
	RoleCreator     = "creator"
	RoleContributor = "contributor"
)

// MemberProjectItem is one entry of a member's project list.
type MemberProjectItem struct {
	Project models.Project
	Role    string
}

// MemberProjects merges the live projects a member created with those they
// contribute to, across realms. Creator wins when both apply; archived
// projects are dropped from the contribution side too.
func (s *ProfileService) MemberProjects(memberID uint64) ([]MemberProjectItem, error) {
	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	created, err := s.projectRepo.ListByCreator(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created projects: %w", err)
	}

	contributions, err := s.contributorRepo.ListByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	seen := make(map[uint64]bool, len(created))
	items := make([]MemberProjectItem, 0, len(created)+len(contributions))

	for _, project := range created {
		seen[project.ID] = true
		items = append(items, MemberProjectItem{Project: project, Role: RoleCreator})
	}

	for _, c := range contributions {
		if c.Project.ID == 0 || c.Project.Archived || seen[c.Project.ID] {
			continue
		}
		seen[c.Project.ID] = true
		items = append(items, MemberProjectItem{Project: c.Project, Role: RoleContributor})
	}

	return items, nil
}
