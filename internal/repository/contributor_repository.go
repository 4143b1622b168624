package repository

import (
	"errors"

	"github.com/samsara-collective/circle-api/internal/database"
	"github.com/samsara-collective/circle-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateContributor is returned when the (project, member) pair
// already exists. The composite primary key raises it; there is no
// check-then-insert window.
var ErrDuplicateContributor = errors.New("contributor repository: member already on project")

// GormContributorRepository is a GORM implementation of ContributorRepository
type GormContributorRepository struct {
	db *gorm.DB
}

// NewContributorRepository creates a new ContributorRepository
func NewContributorRepository(db *gorm.DB) ContributorRepository {
	return &GormContributorRepository{db: db}
}

// Add inserts a contributor record
func (r *GormContributorRepository) Add(contributor *models.Contributor) error {
	err := r.db.Create(contributor).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateContributor
	}
	return err
}

// ListByProject lists contributors of a project within a realm
func (r *GormContributorRepository) ListByProject(projectID uint64, realm string) ([]models.Contributor, error) {
	var contributors []models.Contributor
	err := r.db.
		Scopes(database.InRealm(realm)).
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Preload("Member").
		Find(&contributors).Error
	if err != nil {
		return nil, err
	}
	return contributors, nil
}

// ListByMember lists a member's contributions across realms. The profile
// view merges these with created projects, so the realm travels on each row
// instead of scoping the query.
func (r *GormContributorRepository) ListByMember(memberID uint64) ([]models.Contributor, error) {
	var contributors []models.Contributor
	err := r.db.
		Where("member_id = ?", memberID).
		Order("joined_at ASC").
		Preload("Project").
		Find(&contributors).Error
	if err != nil {
		return nil, err
	}
	return contributors, nil
}

// MemberIDsByRealm lists the distinct members contributing in a realm
func (r *GormContributorRepository) MemberIDsByRealm(realm string) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Contributor{}).
		Scopes(database.InRealm(realm)).
		Distinct().
		Pluck("member_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
