package repository

import (
	"github.com/samsara-collective/circle-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member row
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail finds a member by normalized email
func (r *GormMemberRepository) FindByEmail(email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDs finds members matching any of the given IDs, oldest first
func (r *GormMemberRepository) FindByIDs(ids []uint64) ([]models.Member, error) {
	if len(ids) == 0 {
		return []models.Member{}, nil
	}
	var members []models.Member
	err := r.db.
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Update persists changes to a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}
