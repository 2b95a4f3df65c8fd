package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "textbook_backend/internal/feature/auth/domain/entity"
	historyentity "textbook_backend/internal/feature/history/domain/entity"
)

// OpenDB connects to PostgreSQL, retrying for up to 60 seconds so the server
// survives a database that comes up slightly later (container startup order).
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func OpenDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
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
		// マイグレーション（User, Message）
		if err := db.AutoMigrate(
			&authentity.User{},
			&historyentity.Message{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
