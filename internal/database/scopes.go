package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/shift-roster-api/internal/utils"
)

// Page restricts a query to the rows of req. A request without a limit
// leaves the query unbounded.
func Page(req utils.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.Limit <= 0 {
			return db
		}
		return db.Offset(req.Offset()).Limit(req.Limit)
	}
}
