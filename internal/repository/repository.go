package repository

import (
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/utils"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member row
	Create(member *models.Member) error

	// FindByID finds a member by ID
	FindByID(id uint64) (*models.Member, error)

	// FindByEmail finds a member by normalized email
	FindByEmail(email string) (*models.Member, error)

	// FindByIDs finds members matching any of the given IDs, oldest first
	FindByIDs(ids []uint64) ([]models.Member, error)

	// Update persists changes to a member
	Update(member *models.Member) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a live (non-archived) project within a realm,
	// with optional preloading
	FindByID(id uint64, realm string, preload ...string) (*models.Project, error)

	// ListByRealm lists live projects in a realm, oldest first
	ListByRealm(realm string, params utils.PaginationParams) ([]models.Project, error)

	// CountByRealm counts live projects in a realm
	CountByRealm(realm string) (int64, error)

	// ListByCreator lists a member's live projects across realms
	ListByCreator(creatorID uint64) ([]models.Project, error)

	// CreatorIDsByRealm lists the distinct creators of live projects in a
	// realm
	CreatorIDsByRealm(realm string) ([]uint64, error)

	// UpdateStatus sets the status of a project in a single update scoped
	// by (id, creator, realm, archived=false). Returns the number of rows
	// affected; zero means the scoping predicates rejected the mutation.
	UpdateStatus(id, creatorID uint64, realm string, status models.ProjectStatus) (int64, error)

	// Archive sets archived=true and status=closed in one update scoped by
	// (id, creator, realm). Returns the number of rows affected.
	Archive(id, creatorID uint64, realm string) (int64, error)

	// SetImageURL updates the project image reference, scoped by
	// (id, creator, realm)
	SetImageURL(id, creatorID uint64, realm string, url string) (int64, error)
}

// ContributorRepository defines the interface for the membership store
type ContributorRepository interface {
	// Add inserts a contributor record. A duplicate (project, member) pair
	// returns ErrDuplicateContributor; the storage constraint is the only
	// membership check.
	Add(contributor *models.Contributor) error

	// ListByProject lists contributors of a project within a realm with
	// their member profiles
	ListByProject(projectID uint64, realm string) ([]models.Contributor, error)

	// ListByMember lists a member's contributions across realms with the
	// projects they belong to
	ListByMember(memberID uint64) ([]models.Contributor, error)

	// MemberIDsByRealm lists the distinct members contributing in a realm
	MemberIDsByRealm(realm string) ([]uint64, error)
}

// ApplicationRepository defines the interface for the application queue
type ApplicationRepository interface {
	// Create inserts a pending application
	Create(app *models.Application) error

	// FindByID finds an application within a realm
	FindByID(id uint64, realm string) (*models.Application, error)

	// ListPending lists pending applications for a project in insertion
	// order, with applicant profiles
	ListPending(projectID uint64, realm string) ([]models.Application, error)

	// CountPending counts pending applications for a project
	CountPending(projectID uint64, realm string) (int64, error)

	// HasPending reports whether the applicant already has a pending
	// application for the project
	HasPending(projectID, applicantID uint64, realm string) (bool, error)

	// Approve inserts the contributor record and marks the application
	// approved in one transaction. An already-resolved application returns
	// ErrApplicationResolved and nothing is written.
	Approve(app *models.Application) error

	// Reject marks the application rejected. An already-resolved
	// application returns ErrApplicationResolved.
	Reject(app *models.Application) error
}
