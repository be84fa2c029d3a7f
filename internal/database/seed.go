package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedUser is an account created by Seed.
type SeedUser struct {
	Name       string
	Email      string
	Password   string
	Role       models.Role
	HourlyWage float64
}

// DefaultSeedUsers are the demo accounts for a fresh installation.
var DefaultSeedUsers = []SeedUser{
	{Name: "Admin User", Email: "admin@test.com", Password: "admin123", Role: models.RoleAdmin, HourlyWage: 25},
	{Name: "Staff User", Email: "staff@test.com", Password: "staff123", Role: models.RoleStaff, HourlyWage: 18},
}

// Seed upserts users by email, restoring any that were soft-deleted.
func Seed(ctx context.Context, db *gorm.DB, users []SeedUser) error {
	for _, su := range users {
		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}

		user := models.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: hash,
			Role:         su.Role,
			HourlyWage:   su.HourlyWage,
		}
		err = db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "role", "hourly_wage", "deleted", "updated_at"}),
		}).Create(&user).Error
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", su.Email, err)
		}

		log.Info().Str("email", su.Email).Str("role", string(su.Role)).Msg("Seeded user")
	}
	return nil
}
