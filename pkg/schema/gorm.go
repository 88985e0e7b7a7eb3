package schema

import (
	"strings"

	"gorm.io/gorm"
)

// ListSeparator joins multi-valued string columns (colors, legal sets).
const ListSeparator = ","

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Card{},
		&SearchTerm{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// JoinList serializes a string slice into a list column value.
func JoinList(ss []string) string {
	return strings.Join(ss, ListSeparator)
}

// SplitList parses a list column value back into a slice. An empty
// value yields nil.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ListSeparator)
}
