package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/models"
)

// SettingHandler manages the contact-settings singleton.
type SettingHandler struct {
	db *gorm.DB
}

// NewSettingHandler constructs SettingHandler.
func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

// Get returns the settings row, creating it with defaults on first read.
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	var setting models.Setting
	err := h.db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.DefaultSetting()
		if err := h.db.Create(&setting).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return c.JSON(setting)
}

type updateSettingRequest struct {
	WhatsAppNumber  string `json:"whatsapp_number"`
	WhatsAppMessage string `json:"whatsapp_message"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	ContactAddress  string `json:"contact_address"`
}

// Update overwrites supplied fields, keeping current values for any
// left empty.
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req updateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var setting models.Setting
	err := h.db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.DefaultSetting()
	} else if err != nil {
		return err
	}

	if req.WhatsAppNumber != "" {
		setting.WhatsAppNumber = req.WhatsAppNumber
	}
	if req.WhatsAppMessage != "" {
		setting.WhatsAppMessage = req.WhatsAppMessage
	}
	if req.ContactPhone != "" {
		setting.ContactPhone = req.ContactPhone
	}
	if req.ContactEmail != "" {
		setting.ContactEmail = req.ContactEmail
	}
	if req.ContactAddress != "" {
		setting.ContactAddress = req.ContactAddress
	}

	if err := h.db.Save(&setting).Error; err != nil {
		return err
	}
	return c.JSON(setting)
}
