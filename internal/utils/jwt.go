package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PurposePINReset marks short-lived tokens minted by OTP verification
// that authorize exactly one thing: overwriting a PIN.
const PurposePINReset = "pin_reset"

// TokenClaims is the payload carried by every token this service signs.
// Role and Email are set only on admin tokens; Role doubles as the
// discriminant when deciding which shape was decoded. Purpose is set
// only on reset-authorization tokens.
type TokenClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the admin claims shape.
func (c *TokenClaims) IsAdmin() bool {
	return c.Role != ""
}

// IsReset reports whether the token is a reset authorization.
func (c *TokenClaims) IsReset() bool {
	return c.Purpose == PurposePINReset
}

// GenerateUserToken creates a signed session token for a regular user.
func GenerateUserToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	return sign(secret, &TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateAdminToken creates a signed session token for an admin.
func GenerateAdminToken(secret string, adminID uuid.UUID, email, role string, ttl time.Duration) (string, error) {
	return sign(secret, &TokenClaims{
		UserID: adminID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateResetToken creates the short-lived authorization returned by
// OTP verification and demanded by the reset-PIN endpoint.
func GenerateResetToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	return sign(secret, &TokenClaims{
		UserID:  userID.String(),
		Purpose: PurposePINReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func sign(secret string, claims *TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// SubjectID parses the user/admin UUID out of validated claims.
func (c *TokenClaims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
