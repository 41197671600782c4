package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

// MaintenanceHandler hosts admin-only data fixups.
type MaintenanceHandler struct {
	db *gorm.DB
}

// NewMaintenanceHandler constructs MaintenanceHandler.
func NewMaintenanceHandler(db *gorm.DB) *MaintenanceHandler {
	return &MaintenanceHandler{db: db}
}

// NormalizeCities rewrites stored city values into canonical title case
// across both listing collections, one record at a time. Cost is linear
// in collection size; there is no batching.
func (h *MaintenanceHandler) NormalizeCities(c *fiber.Ctx) error {
	var projects []models.Project
	if err := h.db.Find(&projects).Error; err != nil {
		return err
	}

	projectsUpdated := 0
	for i := range projects {
		normalized := utils.NormalizeCity(projects[i].Location.City)
		if normalized == projects[i].Location.City {
			continue
		}
		projects[i].Location.City = normalized
		if err := h.db.Save(&projects[i]).Error; err != nil {
			return err
		}
		projectsUpdated++
	}

	var properties []models.Property
	if err := h.db.Find(&properties).Error; err != nil {
		return err
	}

	propertiesUpdated := 0
	for i := range properties {
		normalized := utils.NormalizeCity(properties[i].Location.City)
		if normalized == properties[i].Location.City {
			continue
		}
		properties[i].Location.City = normalized
		if err := h.db.Save(&properties[i]).Error; err != nil {
			return err
		}
		propertiesUpdated++
	}

	return c.JSON(fiber.Map{
		"msg":                "City normalization complete",
		"projects_updated":   projectsUpdated,
		"properties_updated": propertiesUpdated,
	})
}
