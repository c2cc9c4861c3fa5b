package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrewpaige1/thoughtcatcher-api/auth"
	"github.com/andrewpaige1/thoughtcatcher-api/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const (
	resetTokenAlphabet = "0123456789abcdef"
	resetTokenLength   = 40
)

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	CreateToken(userID string) (string, error)
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

type PreferencesPatch struct {
	Theme            *string `json:"theme" validate:"omitempty,oneof=light dark"`
	AutoSaveInterval *int    `json:"auto_save_interval" validate:"omitempty,gte=1000"`
}

var userMessages = map[string]string{
	"username.required":  "Username is required",
	"username":           "Username must be between 3 and 30 characters",
	"email":              "Please include a valid email",
	"password.required":  "Password is required",
	"password":           "Password must be at least 6 characters",
	"theme":              "Theme must be light or dark",
	"auto_save_interval": "Auto save interval must be at least 1000 ms",
}

type Users struct {
	db       *gorm.DB
	tokens   TokenIssuer
	resetTTL time.Duration
	now      func() time.Time
}

func NewUsers(db *gorm.DB, tokens TokenIssuer, resetTTL time.Duration) *Users {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &Users{db: db, tokens: tokens, resetTTL: resetTTL, now: time.Now}
}

// Register creates the account and returns a token for it.
func (s *Users) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in, userMessages); err != nil {
		return "", err
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return "", &ValidationError{Errors: []FieldError{{Msg: msgUserExists}}}
	}
	if err := db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return "", invalid("username", "Username is already taken")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		Preferences: models.DefaultPreferences(),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", &ValidationError{Errors: []FieldError{{Msg: msgUserExists}}}
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.CreateToken(user.ID)
}

// Login never says whether the email or the password was wrong.
func (s *Users) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in, userMessages); err != nil {
		return "", err
	}

	db := s.db.WithContext(ctx)
	var user models.User
	err := db.Where("email = ?", in.Email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}
	// user.Password is empty when no account matched
	if !auth.CheckPassword(user.Password, in.Password) {
		return "", &ValidationError{Errors: []FieldError{{Msg: msgInvalidCredentials}}}
	}

	if err := db.Model(&user).Update("last_login", s.now()).Error; err != nil {
		return "", fmt.Errorf("stamp last login: %w", err)
	}
	return s.tokens.CreateToken(user.ID)
}

// ForgotPassword stores a fresh reset token on the account and returns it.
// Unknown emails yield ErrUnknownEmail.
func (s *Users) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in, userMessages); err != nil {
		return "", err
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownEmail
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	token, err := gonanoid.Generate(resetTokenAlphabet, resetTokenLength)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	err = db.Model(&user).Updates(map[string]any{
		"reset_password_token":   token,
		"reset_password_expires": s.now().Add(s.resetTTL),
	}).Error
	if err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword swaps the password hash and clears the token, so each token works once.
func (s *Users) ResetPassword(ctx context.Context, token string, in ResetPasswordInput) error {
	if err := check(in, userMessages); err != nil {
		return err
	}
	if token == "" {
		return ErrInvalidResetToken
	}

	db := s.db.WithContext(ctx)
	var user models.User
	err := db.Where("reset_password_token = ? AND reset_password_expires > ?", token, s.now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	err = db.Model(&user).Updates(map[string]any{
		"password":               hash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *Users) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, lookupErr(err, "User")
	}
	return &user, nil
}

func (s *Users) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) (*models.User, error) {
	if err := check(patch, userMessages); err != nil {
		return nil, err
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Theme != nil {
		user.Preferences.Theme = *patch.Theme
	}
	if patch.AutoSaveInterval != nil {
		user.Preferences.AutoSaveInterval = *patch.AutoSaveInterval
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return user, nil
}
