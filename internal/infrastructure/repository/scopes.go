package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerScope limits a query to the rows of one user.
// uuid.Nil yields no rows rather than every row.
func OwnerScope(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", userID)
	}
}

// SearchScope matches term case-insensitively against any of columns
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + term + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			clauses[i] = c + " ILIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// SortScope orders by sortBy when it is in allowed, otherwise by fallback.
// Only "asc" (any case) sorts ascending.
func SortScope(sortBy, sortOrder, fallback string, allowed ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := fallback
		for _, a := range allowed {
			if a == sortBy {
				column = a
				break
			}
		}
		order := "DESC"
		if strings.EqualFold(sortOrder, "asc") {
			order = "ASC"
		}
		return db.Order(column + " " + order)
	}
}
