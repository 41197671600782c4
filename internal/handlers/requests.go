package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/services"
)

// RequestHandler forwards service-request form submissions to the
// operator mailbox. Nothing is persisted.
type RequestHandler struct {
	notifier services.Notifier
	cfg      *config.Config
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(notifier services.Notifier, cfg *config.Config) *RequestHandler {
	return &RequestHandler{notifier: notifier, cfg: cfg}
}

type serviceRequest struct {
	UserName    string `json:"user_name"`
	Phone       string `json:"phone"`
	Requirement string `json:"requirement"`
	ServiceName string `json:"service_name"`
}

// Create validates the form and mails it to the operator.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req serviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.UserName == "" || req.Phone == "" || req.Requirement == "" || req.ServiceName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter all fields")
	}

	subject := fmt.Sprintf("New Service Request: %s", req.ServiceName)
	body := fmt.Sprintf("Service: %s\nUser Name: %s\nPhone Number: %s\nRequirement Details:\n%s\n",
		req.ServiceName, req.UserName, req.Phone, req.Requirement)

	if err := h.notifier.Send(h.cfg.OperatorEmail, subject, body); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send email")
	}

	return c.JSON(fiber.Map{"msg": "Request sent successfully"})
}
