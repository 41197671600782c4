package services

import (
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	user, ok := f.users[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) Save(user *models.User) error {
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	f.sent = append(f.sent, to)
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		UserTokenTTL:  30 * 24 * time.Hour,
		AdminTokenTTL: 7 * 24 * time.Hour,
		ResetTokenTTL: 15 * time.Minute,
	}
}

func newTestService() (*AuthService, *fakeUserStore, *fakeNotifier) {
	store := newFakeUserStore()
	notifier := &fakeNotifier{}
	svc := NewAuthService(store, notifier, testConfig())
	return svc, store, notifier
}

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestRequestOTPCreatesIdentity(t *testing.T) {
	svc, store, notifier := newTestService()

	code, err := svc.RequestOTP(Profile{
		Name:     "Asha",
		Email:    "  New@X.com ",
		Phone:    "9999999999",
		City:     "noida",
		UserType: models.UserTypeBuyer,
	})
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, code)

	user, err := store.FindByEmail("new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, "Noida", user.City)
	assert.False(t, user.IsVerified)
	require.NotNil(t, user.OTPCode)
	assert.Equal(t, code, *user.OTPCode)

	assert.Equal(t, []string{"new@x.com"}, notifier.sent)
}

func TestRequestOTPOverwritesPriorCode(t *testing.T) {
	svc, store, _ := newTestService()

	first, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	second, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	user, err := store.FindByEmail("new@x.com")
	require.NoError(t, err)
	require.NotNil(t, user.OTPCode)
	assert.Equal(t, second, *user.OTPCode)

	// The stale code no longer verifies.
	if first != second {
		_, err = svc.ConfirmOTP("new@x.com", first)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
}

func TestRequestOTPRejectsRegisteredIdentity(t *testing.T) {
	svc, store, _ := newTestService()

	hash, err := utils.HashSecret("1234")
	require.NoError(t, err)
	require.NoError(t, store.Create(&models.User{
		Email:      "done@x.com",
		IsVerified: true,
		PINHash:    hash,
	}))

	_, err = svc.RequestOTP(Profile{Email: "done@x.com"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestNotifierFailureDoesNotFailIssuance(t *testing.T) {
	store := newFakeUserStore()
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := NewAuthService(store, notifier, testConfig())

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, code)
}

func TestRegistrationLifecycle(t *testing.T) {
	svc, _, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com", Name: "Asha"})
	require.NoError(t, err)

	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	_, err = svc.SetPIN("new@x.com", "1234")
	require.NoError(t, err)

	token, err := svc.Login("new@x.com", "1234")
	require.NoError(t, err)

	claims, err := utils.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestConfirmOTPConsumesCode(t *testing.T) {
	svc, store, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	user, err := store.FindByEmail("new@x.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.OTPCode)
	assert.Nil(t, user.OTPExpiresAt)

	// Replaying the consumed code fails.
	_, err = svc.ConfirmOTP("new@x.com", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestConfirmOTPWrongCode(t *testing.T) {
	svc, _, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = svc.ConfirmOTP("new@x.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestConfirmOTPExpired(t *testing.T) {
	svc, store, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err = svc.ConfirmOTP("new@x.com", code)
	assert.ErrorIs(t, err, ErrExpiredCode)

	// Expiry failure leaves the code in place.
	user, err := store.FindByEmail("new@x.com")
	require.NoError(t, err)
	assert.NotNil(t, user.OTPCode)
	assert.False(t, user.IsVerified)
}

func TestConfirmOTPUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ConfirmOTP("ghost@x.com", "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPINRequiresVerification(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)

	_, err = svc.SetPIN("new@x.com", "1234")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _, _ := newTestService()

	// Unknown identity.
	_, err := svc.Login("ghost@x.com", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Identity without a PIN.
	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)
	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	_, err = svc.Login("new@x.com", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Wrong PIN.
	_, err = svc.SetPIN("new@x.com", "1234")
	require.NoError(t, err)

	_, err = svc.Login("new@x.com", "9999")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPINRequiresExistingIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ForgotPIN("ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPINFlow(t *testing.T) {
	svc, _, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)
	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)
	_, err = svc.SetPIN("new@x.com", "1234")
	require.NoError(t, err)

	// Forgot: new OTP, verify it, use the reset token.
	code, err = svc.ForgotPIN("new@x.com")
	require.NoError(t, err)
	resetToken, err := svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPIN("new@x.com", resetToken, "5678"))

	_, err = svc.Login("new@x.com", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("new@x.com", "5678")
	assert.NoError(t, err)
}

func TestResetPINRejectsBadToken(t *testing.T) {
	svc, _, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)
	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	err = svc.ResetPIN("new@x.com", "garbage", "5678")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestResetPINRejectsSessionToken(t *testing.T) {
	svc, store, _ := newTestService()

	code, err := svc.RequestOTP(Profile{Email: "new@x.com"})
	require.NoError(t, err)
	_, err = svc.ConfirmOTP("new@x.com", code)
	require.NoError(t, err)

	user, err := store.FindByEmail("new@x.com")
	require.NoError(t, err)

	session, err := utils.GenerateUserToken("test-secret", user.ID, time.Hour)
	require.NoError(t, err)

	err = svc.ResetPIN("new@x.com", session, "5678")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestResetPINRejectsTokenForOtherIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		code, err := svc.RequestOTP(Profile{Email: email})
		require.NoError(t, err)
		_, err = svc.ConfirmOTP(email, code)
		require.NoError(t, err)
	}

	code, err := svc.ForgotPIN("a@x.com")
	require.NoError(t, err)
	tokenForA, err := svc.ConfirmOTP("a@x.com", code)
	require.NoError(t, err)

	err = svc.ResetPIN("b@x.com", tokenForA, "5678")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestGenerateOTPCodeRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateOTPCode()
		require.NoError(t, err)
		require.Regexp(t, sixDigits, code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
