package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/middleware"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/services"
	"github.com/example/damrideal/internal/utils"
)

// AdminHandler bundles admin authentication and the dashboard.
type AdminHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin with email and password and issues a
// 7-day admin token carrying id, email and role.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide email and password")
	}

	var admin models.AdminCredential
	err := h.db.Where("email = ?", services.NormalizeEmail(req.Email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
	}
	if err != nil {
		return err
	}

	if !admin.IsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is deactivated. Contact support.")
	}

	if !utils.CheckSecret(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
	}

	token, err := utils.GenerateAdminToken(h.cfg.JWTSecret, admin.ID, admin.Email, admin.Role, h.cfg.AdminTokenTTL)
	if err != nil {
		log.Printf("admin token signing failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// Me returns the authenticated admin's record.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.GetCurrentAdmin(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	id, err := claims.SubjectID()
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
	}

	var admin models.AdminCredential
	if err := h.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Admin not found")
		}
		return err
	}
	return c.JSON(admin)
}

// DashboardStats aggregates the counts and recent records shown on the
// admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats := fiber.Map{}

	counts := []struct {
		key   string
		model interface{}
		where []interface{}
	}{
		{"total_projects", &models.Project{}, nil},
		{"total_requirements", &models.Requirement{}, nil},
		{"total_users", &models.User{}, nil},
		{"active_projects", &models.Project{}, []interface{}{"status = ?", models.StatusActive}},
		{"coming_soon_projects", &models.Project{}, []interface{}{"status = ?", models.StatusComingSoon}},
		{"sold_out_projects", &models.Project{}, []interface{}{"status = ?", models.StatusSoldOut}},
		{"inactive_projects", &models.Project{}, []interface{}{"status = ?", models.StatusInactive}},
		{"for_sale_count", &models.Project{}, []interface{}{"for_sale = ?", true}},
		{"for_rent_count", &models.Project{}, []interface{}{"for_rent = ?", true}},
		{"open_requirements", &models.Requirement{}, []interface{}{"status = ?", models.RequirementOpen}},
		{"in_progress_requirements", &models.Requirement{}, []interface{}{"status = ?", models.RequirementInProgress}},
		{"closed_requirements", &models.Requirement{}, []interface{}{"status = ?", models.RequirementClosed}},
	}

	for _, count := range counts {
		query := h.db.Model(count.model)
		if count.where != nil {
			query = query.Where(count.where[0], count.where[1:]...)
		}
		var total int64
		if err := query.Count(&total).Error; err != nil {
			return err
		}
		stats[count.key] = total
	}

	var recentProjects []models.Project
	if err := h.db.Order("created_at desc").Limit(5).Find(&recentProjects).Error; err != nil {
		return err
	}

	var recentRequirements []models.Requirement
	if err := h.db.Preload("User").Order("created_at desc").Limit(5).Find(&recentRequirements).Error; err != nil {
		return err
	}

	var recentUsers []models.User
	if err := h.db.Order("created_at desc").Limit(5).Find(&recentUsers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stats":               stats,
		"recent_projects":     recentProjects,
		"recent_requirements": recentRequirements,
		"recent_users":        recentUsers,
	})
}

// ListUsers returns registered users for the admin dashboard, paginated.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
