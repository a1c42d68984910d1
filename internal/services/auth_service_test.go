package services_test

import (
	"testing"
	"time"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/repositories"
	"cardshop/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// recordingNotifier captures delivered verification codes so tests can
// complete the verification flow.
type recordingNotifier struct {
	emails []string
	codes  []string
}

func (n *recordingNotifier) SendVerificationCode(email, code string) error {
	n.emails = append(n.emails, email)
	n.codes = append(n.codes, code)
	return nil
}

func (n *recordingNotifier) lastCode() string {
	if len(n.codes) == 0 {
		return ""
	}
	return n.codes[len(n.codes)-1]
}

const testJWTSecret = "test_jwt_secret"

func newAuthService() (*services.AuthService, *repositories.MockUserRepository, *recordingNotifier) {
	repo := repositories.NewMockUserRepository()
	notif := &recordingNotifier{}
	return services.NewAuthService(repo, notif, testJWTSecret), repo, notif
}

func TestAuthService_RegisterVerifyLoginRoundTrip(t *testing.T) {
	authService, _, notif := newAuthService()

	user, err := authService.Register("x@y.com", "password123", "")
	assert.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotNil(t, user.VerificationCode)
	assert.Len(t, *user.VerificationCode, 6)
	assert.Equal(t, []string{"x@y.com"}, notif.emails)

	// The stored password must be a hash of the plaintext, never the
	// plaintext itself.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	// Login before verification is forbidden.
	_, _, err = authService.Login("x@y.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	// Wrong code is rejected.
	_, _, err = authService.VerifyEmail("x@y.com", "000000")
	assert.Error(t, err)
	assert.Equal(t, apperrors.BadRequest, apperrors.KindOf(err))

	// Correct code verifies, clears the code and issues a token.
	verified, token, err := authService.VerifyEmail("x@y.com", notif.lastCode())
	assert.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationCode)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, verified.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)

	// Login with the same credentials now succeeds.
	_, token, err = authService.Login("x@y.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_UsernameDefaultsToLocalPart(t *testing.T) {
	authService, _, _ := newAuthService()

	user, err := authService.Register("collector@example.com", "password123", "")
	assert.NoError(t, err)
	assert.Equal(t, "collector", user.Username)
}

func TestAuthService_RegisterConflict(t *testing.T) {
	authService, _, _ := newAuthService()

	_, err := authService.Register("x@y.com", "password123", "xyz")
	assert.NoError(t, err)

	// Same email again, twice in sequence, conflicts both times.
	for i := 0; i < 2; i++ {
		_, err = authService.Register("x@y.com", "otherpass", "other")
		assert.Error(t, err)
		assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
	}

	// Same username with a fresh email also conflicts.
	_, err = authService.Register("fresh@y.com", "password123", "xyz")
	assert.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestAuthService_LoginByEmailOrUsername(t *testing.T) {
	authService, _, notif := newAuthService()

	_, err := authService.Register("x@y.com", "password123", "cardfan")
	assert.NoError(t, err)
	_, _, err = authService.VerifyEmail("x@y.com", notif.lastCode())
	assert.NoError(t, err)

	_, _, err = authService.Login("cardfan", "password123")
	assert.NoError(t, err)
	_, _, err = authService.Login("x@y.com", "password123")
	assert.NoError(t, err)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	authService, _, notif := newAuthService()

	_, err := authService.Register("x@y.com", "password123", "")
	assert.NoError(t, err)
	_, _, err = authService.VerifyEmail("x@y.com", notif.lastCode())
	assert.NoError(t, err)

	// Unknown identifier and wrong password produce the same error so
	// accounts cannot be enumerated.
	_, _, errUnknown := authService.Login("nobody@y.com", "password123")
	_, _, errWrongPass := authService.Login("x@y.com", "wrongpassword")
	assert.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(errUnknown))
	assert.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(errWrongPass))
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_ResendCode(t *testing.T) {
	authService, _, notif := newAuthService()

	// Unknown address: silent success, nothing delivered.
	assert.NoError(t, authService.ResendCode("nobody@y.com"))
	assert.Empty(t, notif.codes)

	_, err := authService.Register("x@y.com", "password123", "")
	assert.NoError(t, err)
	assert.Len(t, notif.codes, 1)

	// Resend regenerates and re-delivers; the latest code is the one that
	// verifies.
	assert.NoError(t, authService.ResendCode("x@y.com"))
	assert.Len(t, notif.codes, 2)

	_, _, err = authService.VerifyEmail("x@y.com", notif.lastCode())
	assert.NoError(t, err)

	// Already verified: silent success, nothing delivered.
	assert.NoError(t, authService.ResendCode("x@y.com"))
	assert.Len(t, notif.codes, 2)
}

func TestAuthService_VerifyUnknownUser(t *testing.T) {
	authService, _, _ := newAuthService()

	_, _, err := authService.VerifyEmail("nobody@y.com", "123456")
	assert.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService, _, _ := newAuthService()

	// Garbage token.
	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	// Expired token signed with the right secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))

	// Token carrying an upper-cased role normalizes at decode.
	shouting := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    "ADMIN",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	shoutingString, _ := shouting.SignedString([]byte(testJWTSecret))
	claims, err := authService.ValidateToken(shoutingString)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, repo, _ := newAuthService()

	user := &models.User{Email: "a@b.com", Username: "ab", Password: "hash", Role: models.RoleUser, IsVerified: true}
	assert.NoError(t, repo.Create(user))

	got, err := authService.GetUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)

	_, err = authService.GetUserByID("missing")
	assert.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
