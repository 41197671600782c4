package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/handlers"
	"github.com/example/damrideal/internal/middleware"
	"github.com/example/damrideal/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, storage services.ObjectStorage) {
	notifier := services.NewNotifier(cfg)
	authService := services.NewAuthService(services.NewUserStore(db), notifier, cfg)

	authHandler := handlers.NewAuthHandler(authService, db, cfg)
	requestHandler := handlers.NewRequestHandler(notifier, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	projectHandler := handlers.NewProjectHandler(db)
	propertyHandler := handlers.NewPropertyHandler(db)
	requirementHandler := handlers.NewRequirementHandler(db)
	settingHandler := handlers.NewSettingHandler(db)
	uploadHandler := handlers.NewUploadHandler(db, storage)
	maintenanceHandler := handlers.NewMaintenanceHandler(db)

	requireUser := middleware.RequireUser(cfg)
	requireAdmin := middleware.RequireAdmin(cfg)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Damrideal API is running", "status": "ok"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/set-pin", authHandler.SetPIN)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-pin", authHandler.ResetPIN)
	auth.Get("/me", requireUser, authHandler.Me)

	// Project listings: reads are public, mutations need a token.
	projects := api.Group("/projects")
	projects.Get("/", projectHandler.List)
	projects.Get("/mine", requireUser, projectHandler.Mine)
	projects.Get("/:id", projectHandler.Get)
	projects.Post("/", requireUser, projectHandler.Create)
	projects.Put("/:id", requireUser, projectHandler.Update)
	projects.Delete("/:id", requireUser, projectHandler.Delete)

	// Property listings
	properties := api.Group("/properties")
	properties.Get("/", propertyHandler.List)
	properties.Get("/mine", requireUser, propertyHandler.Mine)
	properties.Get("/:id", propertyHandler.Get)
	properties.Post("/", requireUser, propertyHandler.Create)
	properties.Put("/:id", requireUser, propertyHandler.Update)
	properties.Delete("/:id", requireUser, propertyHandler.Delete)

	api.Get("/locations", propertyHandler.Locations)

	// Service-request form, relayed to the operator mailbox.
	api.Post("/requests", requestHandler.Create)

	// Requirements
	requirements := api.Group("/requirements")
	requirements.Get("/", requirementHandler.List)
	requirements.Get("/:id", requirementHandler.Get)
	requirements.Post("/", requirementHandler.Create)
	requirements.Put("/:id", requirementHandler.Update)
	requirements.Delete("/:id", requirementHandler.Delete)

	// Settings singleton
	api.Get("/settings", settingHandler.Get)
	api.Put("/settings", requireAdmin, settingHandler.Update)

	// Uploads
	upload := api.Group("/upload", requireUser)
	upload.Post("/project-image/:id", uploadHandler.ProjectImage)
	upload.Post("/project-gallery/:id", uploadHandler.ProjectGallery)
	upload.Post("/project-brochure/:id", uploadHandler.ProjectBrochure)
	upload.Post("/property-image/:id", uploadHandler.PropertyImage)

	// Admin
	adminAuth := api.Group("/admin/auth")
	adminAuth.Post("/login", adminHandler.Login)
	adminAuth.Get("/me", requireAdmin, adminHandler.Me)

	admin := api.Group("/admin", requireAdmin)
	admin.Get("/dashboard/stats", adminHandler.DashboardStats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/normalize-cities", maintenanceHandler.NormalizeCities)
}
