package repository

import (
	"github.com/samsara-collective/circle-api/internal/database"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a live project within a realm with optional preloading.
// Archived projects are invisible here: they behave as if deleted.
func (r *GormProjectRepository) FindByID(id uint64, realm string, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.Scopes(database.InRealm(realm), database.Live())

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByRealm lists live projects in a realm, oldest first
func (r *GormProjectRepository) ListByRealm(realm string, params utils.PaginationParams) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Scopes(database.InRealm(realm), database.Live(), database.Paginate(params)).
		Order("created_at ASC").
		Preload("Creator").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CountByRealm counts live projects in a realm
func (r *GormProjectRepository) CountByRealm(realm string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Scopes(database.InRealm(realm), database.Live()).
		Count(&count).Error
	return count, err
}

// ListByCreator lists a member's live projects across realms
func (r *GormProjectRepository) ListByCreator(creatorID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Scopes(database.Live()).
		Where("created_by = ?", creatorID).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CreatorIDsByRealm lists the distinct creators of live projects in a realm
func (r *GormProjectRepository) CreatorIDsByRealm(realm string) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Project{}).
		Scopes(database.InRealm(realm), database.Live()).
		Distinct().
		Pluck("created_by", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus sets the status of a project. The creator and realm
// predicates are defense in depth: the store rejects the mutation when the
// acting identity is not the creator or the realm does not match, and an
// archived project never changes status again.
func (r *GormProjectRepository) UpdateStatus(id, creatorID uint64, realm string, status models.ProjectStatus) (int64, error) {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND created_by = ? AND realm = ? AND archived = ?", id, creatorID, realm, false).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// Archive sets archived=true and status=closed in one update. Irreversible.
func (r *GormProjectRepository) Archive(id, creatorID uint64, realm string) (int64, error) {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND created_by = ? AND realm = ?", id, creatorID, realm).
		Updates(map[string]interface{}{
			"archived": true,
			"status":   models.ProjectStatusClosed,
		})
	return res.RowsAffected, res.Error
}

// SetImageURL updates the project image reference
func (r *GormProjectRepository) SetImageURL(id, creatorID uint64, realm string, url string) (int64, error) {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND created_by = ? AND realm = ? AND archived = ?", id, creatorID, realm, false).
		Update("image_url", url)
	return res.RowsAffected, res.Error
}
