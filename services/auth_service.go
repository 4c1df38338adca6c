package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naimekattor/assunnah-blog/config"
	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/repositories"
)

const minPasswordLength = 8

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

// ResetNotifier delivers a reset token to the account's email address.
// Mail delivery itself is out of scope; the default logs the token.
type ResetNotifier func(email, token string)

type authService struct {
	userRepo   repositories.UserRepository
	tokenStore ResetTokenStore
	notify     ResetNotifier
}

func NewAuthService(userRepo repositories.UserRepository, tokenStore ResetTokenStore, notify ResetNotifier) AuthService {
	if notify == nil {
		notify = func(email, token string) {
			log.Printf("password reset token for %s: %s", email, token)
		}
	}
	return &authService{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		notify:     notify,
	}
}

// Register creates the profile implicitly on first authentication.
// Everyone starts as an ordinary user; role changes happen out of band.
func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return nil, models.ErrorConflict{Message: "an account with this email already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorUpstream{Message: "look up account", Err: err}
	}

	if len(req.Password) < minPasswordLength {
		return nil, models.ErrorValidation{Message: "password must be at least 8 characters long"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "hash password", Err: err}
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "an account with this email already exists"}
		}
		return nil, models.ErrorUpstream{Message: "create account", Err: err}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "sign token", Err: err}
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
		}
		return nil, models.ErrorUpstream{Message: "look up account", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, models.ErrorUpstream{Message: "sign token", Err: err}
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, models.ErrorUpstream{Message: "load user", Err: err}
	}
	return user, nil
}

// ForgotPassword issues a reset token when the account exists. It never
// reports whether the email is registered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.ErrorUpstream{Message: "look up account", Err: err}
	}

	token, err := s.tokenStore.Issue(ctx, user.ID)
	if err != nil {
		return models.ErrorUpstream{Message: "issue reset token", Err: err}
	}

	s.notify(user.Email, token)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if len(req.Password) < minPasswordLength {
		return models.ErrorValidation{Message: "password must be at least 8 characters long"}
	}

	userID, err := s.tokenStore.Consume(ctx, req.Token)
	if err != nil {
		return models.ErrorUpstream{Message: "consume reset token", Err: err}
	}
	if userID == 0 {
		return models.ErrorConflict{Message: "invalid or expired reset token"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.ErrorUpstream{Message: "hash password", Err: err}
	}

	if err := s.userRepo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return models.ErrorUpstream{Message: "update password", Err: err}
	}
	return nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(config.JWTExpiration).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
