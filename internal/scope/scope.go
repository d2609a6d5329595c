package scope

import "gorm.io/gorm"

// ByStatus returns a GORM scope that filters surveys by publication state.
func ByStatus(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// ByEmail returns a GORM scope that filters rows by their email column.
func ByEmail(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", email)
	}
}
