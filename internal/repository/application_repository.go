package repository

import (
	"errors"
	"time"

	"github.com/samsara-collective/circle-api/internal/database"
	"github.com/samsara-collective/circle-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrApplicationResolved is returned when resolving an application that is
// no longer pending. Approved and rejected are terminal.
var ErrApplicationResolved = errors.New("application repository: application already resolved")

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create inserts a pending application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

// FindByID finds an application within a realm
func (r *GormApplicationRepository) FindByID(id uint64, realm string) (*models.Application, error) {
	var app models.Application
	if err := r.db.Scopes(database.InRealm(realm)).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListPending lists pending applications for a project in insertion order
func (r *GormApplicationRepository) ListPending(projectID uint64, realm string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Scopes(database.InRealm(realm)).
		Where("project_id = ? AND status = ?", projectID, models.ApplicationStatusPending).
		Order("created_at ASC").
		Preload("Applicant").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// CountPending counts pending applications for a project
func (r *GormApplicationRepository) CountPending(projectID uint64, realm string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Scopes(database.InRealm(realm)).
		Where("project_id = ? AND status = ?", projectID, models.ApplicationStatusPending).
		Count(&count).Error
	return count, err
}

// HasPending reports whether the applicant already has a pending application
func (r *GormApplicationRepository) HasPending(projectID, applicantID uint64, realm string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Scopes(database.InRealm(realm)).
		Where("project_id = ? AND applicant_id = ? AND status = ?",
			projectID, applicantID, models.ApplicationStatusPending).
		Count(&count).Error
	return count > 0, err
}

// Approve inserts the contributor record and marks the application approved
// within a single transaction, so a failed status update rolls the
// membership back instead of leaving an approved-looking contributor with a
// pending application. The status predicate guards the terminal state: zero
// rows affected means someone already resolved it, and the whole
// transaction is abandoned.
func (r *GormApplicationRepository) Approve(app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		contributor := models.Contributor{
			ProjectID: app.ProjectID,
			MemberID:  app.ApplicantID,
			Realm:     app.Realm,
			JoinedAt:  time.Now(),
		}

		// The applicant may already be a contributor (joined while the
		// project was open); approving still resolves the application.
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&contributor).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}

		res := tx.Model(&models.Application{}).
			Where("id = ? AND realm = ? AND status = ?",
				app.ID, app.Realm, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				"status":      models.ApplicationStatusApproved,
				"resolved_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplicationResolved
		}

		return nil
	})
}

// Reject marks the application rejected. Single write, same terminal guard.
func (r *GormApplicationRepository) Reject(app *models.Application) error {
	res := r.db.Model(&models.Application{}).
		Where("id = ? AND realm = ? AND status = ?",
			app.ID, app.Realm, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":      models.ApplicationStatusRejected,
			"resolved_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationResolved
	}
	return nil
}
