package models

import "gorm.io/gorm"

// MigrateAll keeps the schema in step on startup. New tables only; column
// changes still go through by hand.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Dress{},
		&Booking{},
		&SaleOrder{},
		&FinanceRecord{},
		&AuditLog{},
	)
}
