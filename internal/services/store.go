package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/damrideal/internal/models"
)

// UserStore is the persistence port the auth service talks to. Tests
// substitute an in-memory fake.
type UserStore interface {
	// FindByEmail looks up an identity by normalized email and returns
	// ErrNotFound when none matches.
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	// Save persists the full record in a single UPDATE, so OTP
	// consumption and the verified flag never land separately.
	Save(user *models.User) error
}

// NormalizeEmail lowercases and trims the primary lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type gormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns the gorm-backed UserStore used in production.
func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *gormUserStore) Save(user *models.User) error {
	return s.db.Save(user).Error
}
