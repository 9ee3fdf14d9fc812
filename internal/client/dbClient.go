package client

import (
	"log"

	"gumroad-relay/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSqliteClient opens (or creates) the audit database file and runs
// migrations. Only called when DATABASE_PATH is configured.
func InitSqliteClient(databasePath string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open audit database:", err)
	}

	if err := db.AutoMigrate(
		&model.CheckRecord{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
