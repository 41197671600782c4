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
)

// AuthHandler exposes the registration and login flows over HTTP.
type AuthHandler struct {
	svc *services.AuthService
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *services.AuthService, db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, db: db, cfg: cfg}
}

type sendOTPRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	UserType string `json:"user_type"`
}

// SendOTP starts registration by issuing a verification code.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	if req.UserType != "" && !models.ValidUserType(req.UserType) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user type")
	}

	code, err := h.svc.RequestOTP(services.Profile{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		UserType: req.UserType,
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyRegistered) {
			return fiber.NewError(fiber.StatusBadRequest, "Account already registered")
		}
		return err
	}

	resp := fiber.Map{"msg": "OTP sent to email"}
	if !h.cfg.Production() {
		// Dev fallback: the notifier may be the log backend.
		resp["otp"] = code
	}
	return c.JSON(resp)
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP consumes the code and marks the identity verified. The
// returned reset token authorizes a subsequent reset-pin call.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resetToken, err := h.svc.ConfirmOTP(req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExpiredCode):
			return fiber.NewError(fiber.StatusBadRequest, "OTP expired")
		case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrInvalidCode):
			// Generic on purpose: no account enumeration via this path.
			log.Printf("otp verification rejected for %s: %v", req.Email, err)
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"msg":         "OTP Verified",
		"reset_token": resetToken,
	})
}

type setPINRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// SetPIN finalizes registration and returns a session token.
func (h *AuthHandler) SetPIN(c *fiber.Ctx) error {
	var req setPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.PIN == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and pin are required")
	}

	token, err := h.svc.SetPIN(req.Email, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			log.Printf("set-pin rejected for %s: %v", req.Email, err)
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
		case errors.Is(err, services.ErrNotVerified):
			return fiber.NewError(fiber.StatusBadRequest, "User email not verified")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"msg":   "Account created successfully",
	})
}

type loginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// Login issues a session token from an existing credential.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, err := h.svc.Login(req.Email, req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid Credentials")
		}
		return err
	}

	return c.JSON(fiber.Map{"token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword reissues an OTP for an existing identity.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code, err := h.svc.ForgotPIN(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	resp := fiber.Map{"msg": "OTP sent to email"}
	if !h.cfg.Production() {
		resp["otp"] = code
	}
	return c.JSON(resp)
}

type resetPINRequest struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
	PIN        string `json:"pin"`
}

// ResetPIN overwrites the credential given a reset authorization.
func (h *AuthHandler) ResetPIN(c *fiber.Ctx) error {
	var req resetPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.PIN == "" {
		return fiber.NewError(fiber.StatusBadRequest, "pin is required")
	}

	if err := h.svc.ResetPIN(req.Email, req.ResetToken, req.PIN); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			log.Printf("reset-pin rejected for %s: %v", req.Email, err)
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials")
		case errors.Is(err, services.ErrNotAuthorized):
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
		}
		return err
	}

	return c.JSON(fiber.Map{"msg": "PIN reset successfully"})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(user)
}
