package models

// Admin roles.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// AdminCredential is a dashboard operator account. Admins authenticate
// with a password rather than the OTP/PIN flow used by regular users.
type AdminCredential struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
}
