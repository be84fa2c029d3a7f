package database

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the lookup indexes used by roster and schedule queries
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns []string
	}{
		// Shift indexes for roster views and personal schedules
		{&models.Shift{}, "shifts", "idx_shifts_roster_id", []string{"roster_id"}},
		{&models.Shift{}, "shifts", "idx_shifts_staff_start", []string{"staff_id", "start_time"}},

		// Clock log indexes for attendance history
		{&models.ClockLog{}, "clock_logs", "idx_clock_logs_staff_clock_in", []string{"staff_id", "clock_in"}},
		{&models.ClockLog{}, "clock_logs", "idx_clock_logs_shift_id", []string{"shift_id"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}
