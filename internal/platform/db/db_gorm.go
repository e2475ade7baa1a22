// Package db opens the application's GORM database connection.
package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "jobtrack_backend/internal/feature/auth/adapters"
	authentity "jobtrack_backend/internal/feature/auth/domain/entity"
	trackerentity "jobtrack_backend/internal/feature/tracker/domain/entity"
)

// OpenDB connects to the database, retrying for up to a minute.
// A DATABASE_URL env var selects postgres; otherwise a local sqlite file is
// used (path from SQLITE_PATH, default "jobtrack.db").
// TranslateError is enabled so unique violations surface as gorm.ErrDuplicatedKey
// on both dialects.
func OpenDB() *gorm.DB {
	open := func() (*gorm.DB, error) {
		cfg := &gorm.Config{TranslateError: true}
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			return gorm.Open(postgres.Open(dsn), cfg)
		}
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "jobtrack.db"
		}
		return gorm.Open(sqlite.Open(path), cfg)
	}

	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = open()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := conn.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&trackerentity.Application{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}
