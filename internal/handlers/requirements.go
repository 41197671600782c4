package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

// RequirementHandler manages buyer requirement briefs.
type RequirementHandler struct {
	db *gorm.DB
}

// NewRequirementHandler constructs RequirementHandler.
func NewRequirementHandler(db *gorm.DB) *RequirementHandler {
	return &RequirementHandler{db: db}
}

// List returns requirements newest first with the posting user joined.
func (h *RequirementHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var requirements []models.Requirement
	if err := h.db.Preload("User").
		Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&requirements).Error; err != nil {
		return err
	}
	return c.JSON(requirements)
}

// Get returns a single requirement with the posting user joined.
func (h *RequirementHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
	}

	var requirement models.Requirement
	if err := h.db.Preload("User").First(&requirement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
		}
		return err
	}
	return c.JSON(requirement)
}

type createRequirementRequest struct {
	UserID            *uuid.UUID `json:"user_id"`
	Category          string     `json:"category"`
	BudgetMin         *float64   `json:"budget_min"`
	BudgetMax         *float64   `json:"budget_max"`
	Location          string     `json:"location"`
	Size              string     `json:"size"`
	CustomRequirement string     `json:"custom_requirement"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
}

// Create persists a requirement and re-reads it with the user joined.
// The create and the re-read are separate round-trips; a concurrent
// delete in between surfaces as not found.
func (h *RequirementHandler) Create(c *fiber.Ctx) error {
	var req createRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "category is required")
	}

	if req.Status == "" {
		req.Status = models.RequirementOpen
	}
	if !models.ValidRequirementStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	if req.Type != "" && !models.ValidRequirementType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid type")
	}

	requirement := models.Requirement{
		UserID:            req.UserID,
		Category:          req.Category,
		BudgetMin:         req.BudgetMin,
		BudgetMax:         req.BudgetMax,
		Location:          req.Location,
		Size:              req.Size,
		CustomRequirement: req.CustomRequirement,
		Type:              req.Type,
		Status:            req.Status,
	}

	if err := h.db.Create(&requirement).Error; err != nil {
		return err
	}

	var populated models.Requirement
	if err := h.db.Preload("User").First(&populated, "id = ?", requirement.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
		}
		return err
	}
	return c.JSON(populated)
}

type requirementPatch struct {
	Category          utils.Optional[string]  `json:"category"`
	BudgetMin         utils.Optional[float64] `json:"budget_min"`
	BudgetMax         utils.Optional[float64] `json:"budget_max"`
	Location          utils.Optional[string]  `json:"location"`
	Size              utils.Optional[string]  `json:"size"`
	CustomRequirement utils.Optional[string]  `json:"custom_requirement"`
	Type              utils.Optional[string]  `json:"type"`
	Status            utils.Optional[string]  `json:"status"`
}

func buildRequirementUpdates(p requirementPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	putString(updates, "category", p.Category)
	putString(updates, "location", p.Location)
	putString(updates, "size", p.Size)
	putString(updates, "custom_requirement", p.CustomRequirement)

	if p.Type.Set {
		if !p.Type.Valid || !models.ValidRequirementType(p.Type.Value) {
			return nil, errors.New("invalid type")
		}
		updates["type"] = p.Type.Value
	}

	if p.Status.Set {
		if !p.Status.Valid || !models.ValidRequirementStatus(p.Status.Value) {
			return nil, errors.New("invalid status")
		}
		updates["status"] = p.Status.Value
	}

	if p.BudgetMin.Set {
		if p.BudgetMin.Valid {
			updates["budget_min"] = p.BudgetMin.Value
		} else {
			updates["budget_min"] = nil
		}
	}
	if p.BudgetMax.Set {
		if p.BudgetMax.Valid {
			updates["budget_max"] = p.BudgetMax.Value
		} else {
			updates["budget_max"] = nil
		}
	}

	return updates, nil
}

// Update applies a whitelisted-field partial update.
func (h *RequirementHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
	}

	var patch requirementPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates, err := buildRequirementUpdates(patch)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var requirement models.Requirement
	if err := h.db.First(&requirement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
		}
		return err
	}

	if len(updates) > 0 {
		if err := h.db.Model(&requirement).Updates(updates).Error; err != nil {
			return err
		}
	}

	var populated models.Requirement
	if err := h.db.Preload("User").First(&populated, "id = ?", id).Error; err != nil {
		return err
	}
	return c.JSON(populated)
}

// Delete removes a requirement. Deleting twice reports not found.
func (h *RequirementHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
	}

	result := h.db.Delete(&models.Requirement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Requirement not found")
	}

	return c.JSON(fiber.Map{"msg": "Requirement deleted"})
}
