package database

import (
	"errors"
	"strings"

	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/pkg/logger"
	"gorm.io/gorm"
)

// SeedInvites creates unclaimed member rows for the given emails. An invite
// is just a member row with no password; signup claims it. Existing rows are
// left alone.
func SeedInvites(db *gorm.DB, emails []string) error {
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		var existing models.Member
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.Create(&models.Member{Email: email}).Error; err != nil {
			return err
		}
		logger.Info().Str("email", email).Msg("seeded invite")
	}
	return nil
}
