package main

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/pkg/config"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Topic{},
		&models.Post{},
		&models.Comment{},
		&models.Rating{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addRatingScoreCheck,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addRatingScoreCheck keeps out-of-range scores out of the table even if a
// write path skips request validation.
func addRatingScoreCheck(db *gorm.DB) error {
	if err := db.Exec(`ALTER TABLE ratings DROP CONSTRAINT IF EXISTS ck_rating_score`).Error; err != nil {
		return err
	}
	return db.Exec(`ALTER TABLE ratings ADD CONSTRAINT ck_rating_score CHECK (score BETWEEN 1 AND 5)`).Error
}

// seed provisions the initial admin account and a starter set of topics.
// Registration never grants the admin role, so this is the only path that
// creates one.
func seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	return seedTopics(db)
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	ph, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(ph),
		Nickname:     "Administrator",
		Role:         models.RoleAdmin,
	}).Error
}

func seedTopics(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Topic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	topics := []models.Topic{
		{Name: "General", Description: "Anything that does not fit elsewhere"},
		{Name: "Announcements", Description: "News from the site operators"},
		{Name: "Feedback", Description: "Suggestions and bug reports for the board itself"},
	}
	return db.Create(&topics).Error
}
