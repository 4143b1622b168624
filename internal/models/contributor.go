package models

import "time"

// Contributor records an accepted membership on a project. The composite
// primary key is the uniqueness constraint: a duplicate insert conflicts at
// the storage layer, which is the sole source of truth for "already a
// member" — there is no separate existence check.
type Contributor struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	MemberID  uint64    `gorm:"primarykey" json:"member_id"`
	Realm     string    `gorm:"type:varchar(64);not null;index" json:"realm"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Member  Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
