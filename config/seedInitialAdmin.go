package config

import (
	"errors"
	"fmt"
	"log"

	"dorm-reservation-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInitialAdmin creates a single admin account for first system access
func SeedInitialAdmin(db *gorm.DB) error {
	adminEmail := GetEnvOrDefault("INITIAL_ADMIN_EMAIL", "admin@example.com")

	var existingUser models.User
	err := db.Where("email = ?", adminEmail).First(&existingUser).Error
	if err == nil {
		log.Printf("Initial admin already exists: %s", existingUser.Email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking for existing admin: %v", err)
		return fmt.Errorf("error checking for existing admin: %w", err)
	}

	adminPassword := GetEnv("INITIAL_ADMIN_PASSWORD")
	if adminPassword == "" {
		return fmt.Errorf("INITIAL_ADMIN_PASSWORD must be set to seed the first admin account")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.User{
		ID:       uuid.New(),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.AdminRole,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to create initial admin: %v", err)
		return fmt.Errorf("failed to create initial admin: %w", err)
	}

	log.Printf("Initial admin created: %s", admin.Email)
	return nil
}
