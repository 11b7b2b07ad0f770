package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&Smp{},
		&PlannedInspection{},
	)
	if err != nil {
		log.Printf("migration failed: %v", err)
	}
}
