package main

import (
	"os"
	"strings"

	"pb01/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logger.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect postgres database", zap.Error(err))
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so the users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			logger.Warn("migration warning (roles)", zap.Error(err))
		}
	}
	seedRoles()

	// Now migrate the rest. Parent table before children so the profile_id
	// FKs have something to point at. Migrate individually so a failure on
	// one doesn't block the others.
	if shouldMigrate {
		targets := []struct {
			name  string
			model any
		}{
			{"users", &models.User{}},
			{"profiles", &models.Profile{}},
			{"pf_education", &models.Education{}},
			{"pf_work_experience", &models.Work{}},
			{"pf_language", &models.Language{}},
			{"pf_skill", &models.Skill{}},
			{"pf_certificate", &models.Certificate{}},
			{"pf_project", &models.Project{}},
			{"pf_volunteer_experience", &models.Volunteer{}},
			{"pf_social_link", &models.SocialLink{}},
			{"refresh_tokens", &models.RefreshToken{}},
		}
		for _, t := range targets {
			if err := db.AutoMigrate(t.model); err != nil {
				logger.Warn("migration warning", zap.String("table", t.name), zap.Error(err))
			}
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{{Name: "admin", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "admin").First(&role).Error; err != nil {
			logger.Error("failed to find admin role", zap.Error(err))
		}
		rid := role.ID
		admin := models.User{
			Email:    "admin@example.com",
			Name:     "Administrator",
			IsActive: true,
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		logger.Info("Seeded admin user: email=admin@example.com, password=admin123")
	}
	ensurePhotoBase()
}

// ensurePhotoBase creates the base directory for profile photos.
func ensurePhotoBase() {
	base := photoBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		logger.Warn("failed to create photo base dir", zap.String("dir", base), zap.Error(err))
	}
}

// photoBaseDir returns the directory for stored profile photos (configurable via PROFILE_PHOTO_DIR env)
func photoBaseDir() string {
	if v := os.Getenv("PROFILE_PHOTO_DIR"); v != "" {
		return v
	}
	return "uploads/profile_photos"
}
