package main

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(AppConfig.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = db

	if err := MigrateDB(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database connected and migrated")
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Event{},
		&EventAttendee{},
		&Task{},
		&Plan{},
	)
}
