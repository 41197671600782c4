package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

const otpTTL = 10 * time.Minute

// AuthService drives the registration lifecycle:
// send OTP -> verify OTP -> set PIN -> session token, plus login and
// the forgot/reset flow. All state lives on the User record.
type AuthService struct {
	store    UserStore
	notifier Notifier
	cfg      *config.Config
	now      func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(store UserStore, notifier Notifier, cfg *config.Config) *AuthService {
	return &AuthService{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Profile carries the registration fields supplied with send-otp.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	City     string
	UserType string
}

// RequestOTP starts or restarts registration for the given profile. A
// fully registered identity (verified with a PIN set) is rejected with
// ErrAlreadyRegistered; anyone else gets a fresh code that overwrites
// any prior unconsumed one. OTP delivery is best effort: a notifier
// failure never fails issuance.
func (s *AuthService) RequestOTP(p Profile) (string, error) {
	email := NormalizeEmail(p.Email)

	user, err := s.store.FindByEmail(email)
	switch {
	case err == ErrNotFound:
		user = &models.User{
			Name:     p.Name,
			Email:    email,
			Phone:    p.Phone,
			City:     utils.NormalizeCity(p.City),
			UserType: p.UserType,
		}
		if err := s.store.Create(user); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		if user.IsVerified && user.HasPIN() {
			return "", ErrAlreadyRegistered
		}
		if p.Name != "" {
			user.Name = p.Name
		}
		if p.Phone != "" {
			user.Phone = p.Phone
		}
		if p.City != "" {
			user.City = utils.NormalizeCity(p.City)
		}
		if p.UserType != "" {
			user.UserType = p.UserType
		}
	}

	return s.issueOTP(user)
}

// ConfirmOTP consumes an open challenge. Success marks the identity
// verified, clears the code so it cannot be replayed, and returns a
// short-lived reset-authorization token for the forgot-PIN flow.
func (s *AuthService) ConfirmOTP(email, code string) (string, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	if user.OTPCode == nil || *user.OTPCode != code {
		return "", ErrInvalidCode
	}

	if user.OTPExpiresAt == nil || s.now().After(*user.OTPExpiresAt) {
		// Expired codes stay stored; only a successful check clears them.
		return "", ErrExpiredCode
	}

	user.IsVerified = true
	user.OTPCode = nil
	user.OTPExpiresAt = nil
	if err := s.store.Save(user); err != nil {
		return "", err
	}

	return utils.GenerateResetToken(s.cfg.JWTSecret, user.ID, s.cfg.ResetTokenTTL)
}

// SetPIN finalizes registration for a verified identity and returns a
// session token.
func (s *AuthService) SetPIN(email, pin string) (string, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	if !user.IsVerified {
		return "", ErrNotVerified
	}

	hash, err := utils.HashSecret(pin)
	if err != nil {
		return "", err
	}

	user.PINHash = hash
	if err := s.store.Save(user); err != nil {
		return "", err
	}

	return utils.GenerateUserToken(s.cfg.JWTSecret, user.ID, s.cfg.UserTokenTTL)
}

// Login checks the PIN and returns a session token. Missing identity,
// unset PIN and bad PIN are indistinguishable to the caller.
func (s *AuthService) Login(email, pin string) (string, error) {
	user, err := s.store.FindByEmail(email)
	if err == ErrNotFound {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !user.HasPIN() || !utils.CheckSecret(user.PINHash, pin) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateUserToken(s.cfg.JWTSecret, user.ID, s.cfg.UserTokenTTL)
}

// ForgotPIN reissues an OTP for an existing identity only.
func (s *AuthService) ForgotPIN(email string) (string, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	return s.issueOTP(user)
}

// ResetPIN overwrites the credential. The caller must present the
// reset-authorization token minted by ConfirmOTP for this identity.
func (s *AuthService) ResetPIN(email, resetToken, newPIN string) error {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}

	claims, err := utils.ParseToken(s.cfg.JWTSecret, resetToken)
	if err != nil || !claims.IsReset() {
		return ErrNotAuthorized
	}
	if claims.UserID != user.ID.String() {
		return ErrNotAuthorized
	}

	hash, err := utils.HashSecret(newPIN)
	if err != nil {
		return err
	}

	user.PINHash = hash
	return s.store.Save(user)
}

func (s *AuthService) issueOTP(user *models.User) (string, error) {
	code, err := generateOTPCode()
	if err != nil {
		return "", err
	}

	expires := s.now().Add(otpTTL)
	user.OTPCode = &code
	user.OTPExpiresAt = &expires
	if err := s.store.Save(user); err != nil {
		return "", err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	if err := s.notifier.Send(user.Email, "Damrideal verification code", body); err != nil {
		log.Printf("otp dispatch to %s failed: %v", user.Email, err)
	}

	return code, nil
}

// generateOTPCode draws a 6-digit code uniformly from [100000, 999999].
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
