package services

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/repositories"
	"cardshop/pkg/notifier"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, email verification, login and token
// issuance/validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	notifier   notifier.Notifier
	jwtSecret  []byte
	tokenDurat time.Duration
}

// TokenClaims is the decoded payload of a session token.
type TokenClaims struct {
	UserID string
	Role   models.Role
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, notif notifier.Notifier, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		notifier:   notif,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 7 * 24 * time.Hour, // tokens valid for 7 days
	}
}

// Register creates an unverified user with a fresh 6-digit code and hands
// the code to the notification channel. No session is issued; the user must
// verify first.
func (s *AuthService) Register(email, password, username string) (*models.User, error) {
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "User already exists")
	} else if err != nil && apperrors.KindOf(err) != apperrors.NotFound {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "User already exists")
	} else if err != nil && apperrors.KindOf(err) != apperrors.NotFound {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code := generateVerificationCode()
	user := &models.User{
		Email:            email,
		Username:         username,
		Password:         string(hashedPassword),
		Role:             models.RoleUser,
		IsVerified:       false,
		VerificationCode: &code,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Delivery failures must not undo a completed registration; the user
	// can always request a resend.
	if err := s.notifier.SendVerificationCode(email, code); err != nil {
		log.Printf("Warning: failed to deliver verification code to %s: %v", email, err)
	}
	return user, nil
}

// VerifyEmail checks the code, marks the user verified and issues a token.
func (s *AuthService) VerifyEmail(email, code string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user.VerificationCode == nil || *user.VerificationCode != code {
		return nil, "", apperrors.New(apperrors.BadRequest, "Invalid code")
	}

	user.IsVerified = true
	user.VerificationCode = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email or username. The same InvalidCredentials
// error covers both an unknown identifier and a wrong password, so callers
// cannot enumerate accounts.
func (s *AuthService) Login(identifier, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		return nil, "", apperrors.New(apperrors.InvalidCredentials, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.New(apperrors.InvalidCredentials, "Invalid credentials")
	}
	if !user.IsVerified {
		return nil, "", apperrors.New(apperrors.Forbidden, "Email not verified")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResendCode regenerates and re-delivers the verification code. It succeeds
// silently when the user is unknown or already verified.
func (s *AuthService) ResendCode(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}

	code := generateVerificationCode()
	user.VerificationCode = &code
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	if err := s.notifier.SendVerificationCode(email, code); err != nil {
		log.Printf("Warning: failed to deliver verification code to %s: %v", email, err)
	}
	return nil
}

// GetUserByID looks up the user behind a validated token.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ValidateToken parses and validates a session token. Any signature,
// structure or expiry problem maps to Forbidden, per the API contract for
// invalid bearer tokens.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.New(apperrors.Forbidden, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.Forbidden, "Invalid token")
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, apperrors.New(apperrors.Forbidden, "Invalid token")
	}
	return &TokenClaims{
		UserID: userID,
		Role:   models.NormalizeRole(role),
	}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(models.NormalizeRole(string(user.Role))),
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

func generateVerificationCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
