package database

import (
	"github.com/samsara-collective/circle-api/internal/utils"
	"gorm.io/gorm"
)

// InRealm scopes a query to one realm partition. Cross-realm reads must
// never happen, so every project/contributor/application query goes through
// this.
func InRealm(realm string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("realm = ?", realm)
	}
}

// Live excludes archived projects. Archived is terminal; nothing ever
// surfaces an archived project.
func Live() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("archived = ?", false)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
