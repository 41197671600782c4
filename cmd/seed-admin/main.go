package main

import (
	"errors"
	"flag"
	"log"

	"gorm.io/gorm"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/database"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/services"
	"github.com/example/damrideal/internal/utils"
)

func main() {
	email := flag.String("email", "admin@damrideal.com", "admin email")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Admin", "display name")
	role := flag.String("role", models.RoleSuperAdmin, "admin role")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	hash, err := utils.HashSecret(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	normalized := services.NormalizeEmail(*email)

	var admin models.AdminCredential
	err = db.Where("email = ?", normalized).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.AdminCredential{
			Email:        normalized,
			PasswordHash: hash,
			Name:         *name,
			Role:         *role,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		log.Printf("created admin %s", normalized)
	case err != nil:
		log.Fatalf("lookup failed: %v", err)
	default:
		admin.PasswordHash = hash
		admin.Name = *name
		admin.Role = *role
		admin.IsActive = true
		if err := db.Save(&admin).Error; err != nil {
			log.Fatalf("failed to update admin: %v", err)
		}
		log.Printf("updated admin %s", normalized)
	}
}
