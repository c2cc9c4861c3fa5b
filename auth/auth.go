// Package auth issues and verifies the signed identity tokens handed to clients.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaim is the {"user": {"id": ...}} payload carried by every token.
type UserClaim struct {
	ID string `json:"id"`
}

type claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// CustomClaims is what the validator decodes next to the registered claims.
type CustomClaims struct {
	User UserClaim `json:"user"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	if c.User.ID == "" {
		return errors.New("token carries no user id")
	}
	return nil
}

type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Tokens signs identity tokens and builds the matching validator.
type Tokens struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: token secret not set")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Tokens{cfg: cfg, now: time.Now}, nil
}

// CreateToken returns a signed HS256 token for userID.
func (t *Tokens) CreateToken(userID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	})

	tokenString, err := token.SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Validator verifies signature, issuer, audience and expiry of tokens made by CreateToken.
func (t *Tokens) Validator() (*validator.Validator, error) {
	secret := []byte(t.cfg.Secret)
	return validator.New(
		func(ctx context.Context) (interface{}, error) { return secret, nil },
		validator.HS256,
		t.cfg.Issuer,
		[]string{t.cfg.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &CustomClaims{} }),
	)
}

// UserID pulls the user id out of claims produced by Validator.
func UserID(v any) (string, bool) {
	validated, ok := v.(*validator.ValidatedClaims)
	if !ok || validated == nil {
		return "", false
	}
	custom, ok := validated.CustomClaims.(*CustomClaims)
	if !ok || custom == nil || custom.User.ID == "" {
		return "", false
	}
	return custom.User.ID, true
}
