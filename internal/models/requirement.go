package models

import "github.com/google/uuid"

// Requirement categories by counterpart type.
const (
	RequirementServiceProvider = "Service Provider"
	RequirementChannel         = "Channel"
	RequirementInvestor        = "Investor"
)

// Requirement statuses.
const (
	RequirementOpen       = "Open"
	RequirementInProgress = "In Progress"
	RequirementClosed     = "Closed"
)

// ValidRequirementType reports whether t is a known requirement type.
func ValidRequirementType(t string) bool {
	switch t {
	case RequirementServiceProvider, RequirementChannel, RequirementInvestor:
		return true
	}
	return false
}

// ValidRequirementStatus reports whether s is a known requirement status.
func ValidRequirementStatus(s string) bool {
	switch s {
	case RequirementOpen, RequirementInProgress, RequirementClosed:
		return true
	}
	return false
}

// Requirement is a buyer's posted search brief.
type Requirement struct {
	BaseModel
	UserID            *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User              *User      `json:"user,omitempty"`
	Category          string     `json:"category"`
	BudgetMin         *float64   `json:"budget_min"`
	BudgetMax         *float64   `json:"budget_max"`
	Location          string     `json:"location"`
	Size              string     `json:"size"`
	CustomRequirement string     `json:"custom_requirement"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
}
