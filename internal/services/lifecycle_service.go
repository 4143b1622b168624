package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyContributor  = errors.New("you are already part of this project")
	ErrOwnProject          = errors.New("project creators cannot join or apply to their own project")
	ErrProjectNotOpen      = errors.New("project is not open for direct joining")
	ErrProjectNotApplying  = errors.New("project is not accepting applications")
	ErrMessageRequired     = errors.New("application message is required")
	ErrMessageTooLong      = errors.New("application message is too long")
	ErrApplicationPending  = errors.New("you already have a pending application for this project")
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationResolved = errors.New("application has already been resolved")
)

// LifecycleService orchestrates membership mutation and application
// resolution. The viewer identity is always an explicit argument; nothing
// here reads ambient state.
type LifecycleService struct {
	contributorRepo repository.ContributorRepository
	applicationRepo repository.ApplicationRepository
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	contributorRepo repository.ContributorRepository,
	applicationRepo repository.ApplicationRepository,
) *LifecycleService {
	return &LifecycleService{
		contributorRepo: contributorRepo,
		applicationRepo: applicationRepo,
	}
}

// Join adds the viewer to an open project. The insert itself is the
// membership check: a storage-level key conflict is the one and only source
// of ErrAlreadyContributor, so two concurrent joins cannot both commit.
func (s *LifecycleService) Join(project *models.Project, viewerID uint64) ([]models.Contributor, error) {
	if project.CreatedBy == viewerID {
		return nil, ErrOwnProject
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, ErrProjectNotOpen
	}

	contributor := &models.Contributor{
		ProjectID: project.ID,
		MemberID:  viewerID,
		Realm:     project.Realm,
		JoinedAt:  time.Now(),
	}

	if err := s.contributorRepo.Add(contributor); err != nil {
		if errors.Is(err, repository.ErrDuplicateContributor) {
			return nil, ErrAlreadyContributor
		}
		return nil, fmt.Errorf("failed to join project: %w", err)
	}

	// Re-fetch so the caller renders fresh state, not what it remembers.
	contributors, err := s.contributorRepo.ListByProject(project.ID, project.Realm)
	if err != nil {
		return nil, fmt.Errorf("failed to reload contributors: %w", err)
	}
	return contributors, nil
}

// Apply files a pending application to a project in application mode. One
// pending application per (project, applicant): a second attempt while the
// first is undecided is rejected, re-applying after a rejection is allowed.
func (s *LifecycleService) Apply(project *models.Project, viewerID uint64, message string) (*models.Application, error) {
	if project.CreatedBy == viewerID {
		return nil, ErrOwnProject
	}
	if project.Status != models.ProjectStatusApplication {
		return nil, ErrProjectNotApplying
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if len(message) > constants.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	pending, err := s.applicationRepo.HasPending(project.ID, viewerID, project.Realm)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applications: %w", err)
	}
	if pending {
		return nil, ErrApplicationPending
	}

	app := &models.Application{
		ProjectID:   project.ID,
		ApplicantID: viewerID,
		Message:     message,
		Status:      models.ApplicationStatusPending,
		Realm:       project.Realm,
	}

	if err := s.applicationRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// PendingApplications returns the review queue for a project in insertion
// order. Each entry is resolved independently, so an abandoned review
// session leaves the remainder pending for the next one.
func (s *LifecycleService) PendingApplications(projectID uint64, realm string) ([]models.Application, error) {
	apps, err := s.applicationRepo.ListPending(projectID, realm)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Resolve decides one application. Approval inserts the contributor record
// and marks the application approved atomically; rejection only marks it.
// A resolved application is terminal and cannot be decided again.
func (s *LifecycleService) Resolve(project *models.Project, applicationID uint64, approve bool) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(applicationID, project.Realm)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if app.ProjectID != project.ID {
		return nil, ErrApplicationNotFound
	}

	if approve {
		err = s.applicationRepo.Approve(app)
	} else {
		err = s.applicationRepo.Reject(app)
	}
	if err != nil {
		if errors.Is(err, repository.ErrApplicationResolved) {
			return nil, ErrApplicationResolved
		}
		return nil, fmt.Errorf("failed to resolve application: %w", err)
	}

	return s.applicationRepo.FindByID(applicationID, project.Realm)
}

// Contributors re-fetches the contributor list for a project.
func (s *LifecycleService) Contributors(projectID uint64, realm string) ([]models.Contributor, error) {
	contributors, err := s.contributorRepo.ListByProject(projectID, realm)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	return contributors, nil
}
