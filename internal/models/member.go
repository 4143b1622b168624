package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is an invited community profile. A row is seeded with just an email
// (the invite); signup claims it by filling in username and password.
type Member struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"type:varchar(50)" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255)" json:"-"`
	Archetype    string         `gorm:"type:varchar(100)" json:"archetype"`
	Bio          string         `gorm:"type:text" json:"bio"`
	AvatarURL    string         `gorm:"type:varchar(512)" json:"avatar_url"`
	LinkURL      string         `gorm:"type:varchar(512)" json:"link_url"`
	ResumeURL    string         `gorm:"type:varchar(512)" json:"resume_url"`
	ClaimedAt    *time.Time     `json:"claimed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedProjects []Project     `gorm:"foreignKey:CreatedBy" json:"-"`
	Contributions   []Contributor `gorm:"foreignKey:MemberID" json:"-"`
	Applications    []Application `gorm:"foreignKey:ApplicantID" json:"-"`
}

// Claimed reports whether the invite behind this member has been taken.
func (m *Member) Claimed() bool {
	return m.ClaimedAt != nil
}
