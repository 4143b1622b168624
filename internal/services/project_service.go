package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"github.com/samsara-collective/circle-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrTitleRequired       = errors.New("project requires a title")
	ErrDescriptionRequired = errors.New("project requires a description")
	ErrInvalidStatus       = errors.New("invalid project status")
	ErrNotProjectOwner     = errors.New("only the project creator can perform this action")
)

// ProjectService handles project CRUD and owner-only lifecycle mutations.
type ProjectService struct {
	projectRepo     repository.ProjectRepository
	contributorRepo repository.ContributorRepository
	applicationRepo repository.ApplicationRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	contributorRepo repository.ContributorRepository,
	applicationRepo repository.ApplicationRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:     projectRepo,
		contributorRepo: contributorRepo,
		applicationRepo: applicationRepo,
	}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Title           string
	Description     string
	Timeline        string
	Status          models.ProjectStatus
	RolesNeeded     string
	ImageURL        string
	InspirationLink string
	LunarNewYear    bool
	CreatedBy       uint64
	Realm           string
}

// CreateProject creates a project in the caller's realm.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusOpen
	}
	if !models.ValidProjectStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	project := &models.Project{
		Title:           input.Title,
		Description:     input.Description,
		Timeline:        input.Timeline,
		Status:          input.Status,
		RolesNeeded:     input.RolesNeeded,
		ImageURL:        input.ImageURL,
		InspirationLink: input.InspirationLink,
		LunarNewYear:    input.LunarNewYear,
		CreatedBy:       input.CreatedBy,
		Realm:           input.Realm,
		Archived:        false,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ProjectListItem is a project together with the pending-application count,
// which is populated only for projects the viewer owns.
type ProjectListItem struct {
	Project             models.Project
	PendingApplications int64
}

// ListProjects returns one page of a realm's live projects, oldest first,
// with the total live count. Projects owned by the viewer carry their
// pending-application count so the caller can surface the review indicator.
func (s *ProjectService) ListProjects(realm string, viewerID uint64, params utils.PaginationParams) ([]ProjectListItem, int64, error) {
	total, err := s.projectRepo.CountByRealm(realm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	projects, err := s.projectRepo.ListByRealm(realm, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	items := make([]ProjectListItem, len(projects))
	for i, project := range projects {
		items[i] = ProjectListItem{Project: project}

		if project.CreatedBy == viewerID {
			count, err := s.applicationRepo.CountPending(project.ID, realm)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to count applications: %w", err)
			}
			items[i].PendingApplications = count
		}
	}

	return items, total, nil
}

// ProjectDetail is everything a detail view needs, derived fresh on every
// read: no state is cached between mutations.
type ProjectDetail struct {
	Project             models.Project
	Contributors        []models.Contributor
	ViewerAction        ViewerAction
	PendingApplications int64
}

// GetProjectDetail loads a project with its contributor list and the action
// available to the viewer. Owners also get the pending-application count.
func (s *ProjectService) GetProjectDetail(projectID uint64, realm string, viewerID uint64) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(projectID, realm, "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	contributors, err := s.contributorRepo.ListByProject(project.ID, realm)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	detail := &ProjectDetail{
		Project:      *project,
		Contributors: contributors,
		ViewerAction: DeriveViewerAction(project, viewerID),
	}

	if project.CreatedBy == viewerID {
		count, err := s.applicationRepo.CountPending(project.ID, realm)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications: %w", err)
		}
		detail.PendingApplications = count
	}

	return detail, nil
}

// ChangeStatus sets a project's status. The repository predicates on
// (id, creator, realm, not archived); zero affected rows means the actor is
// not the creator, the realm is wrong, or the project is archived.
func (s *ProjectService) ChangeStatus(projectID uint64, realm string, actorID uint64, status models.ProjectStatus) (*models.Project, error) {
	if !models.ValidProjectStatus(status) {
		return nil, ErrInvalidStatus
	}

	affected, err := s.projectRepo.UpdateStatus(projectID, actorID, realm, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotProjectOwner
	}

	project, err := s.projectRepo.FindByID(projectID, realm)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	return project, nil
}

// ArchiveProject ends a project permanently: archived=true, status=closed,
// one update. The project disappears from every listing afterwards.
func (s *ProjectService) ArchiveProject(projectID uint64, realm string, actorID uint64) error {
	affected, err := s.projectRepo.Archive(projectID, actorID, realm)
	if err != nil {
		return fmt.Errorf("failed to archive project: %w", err)
	}
	if affected == 0 {
		return ErrNotProjectOwner
	}
	return nil
}

// SetProjectImage records the uploaded image URL on an owner's project.
func (s *ProjectService) SetProjectImage(projectID uint64, realm string, actorID uint64, url string) error {
	affected, err := s.projectRepo.SetImageURL(projectID, actorID, realm, url)
	if err != nil {
		return fmt.Errorf("failed to set project image: %w", err)
	}
	if affected == 0 {
		return ErrNotProjectOwner
	}
	return nil
}
