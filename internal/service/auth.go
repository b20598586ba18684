package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvolkova/kids_shop/internal/events"
	"github.com/mvolkova/kids_shop/internal/hash"
	"github.com/mvolkova/kids_shop/internal/logging"
	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/tokens"
)

var ErrValidation = errors.New("validation failed")

type AuthService struct {
	Repo      *repo.GormRepo
	Producer  *events.Producer
	JWTSecret []byte
	TokenTTL  time.Duration
}

func (s *AuthService) issueToken(u *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = tokens.DefaultTTL
	}
	return tokens.Sign(u.ID, u.Email, u.IsAdmin, s.JWTSecret, ttl)
}

// Register creates a user and returns a freshly signed token, so the
// caller is logged in immediately.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		return "", err
	}

	s.publish(ctx, "user_registered", &user)
	return s.issueToken(&user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrValidation
	}

	user, err := s.Repo.UserByCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	s.publish(ctx, "user_logged_in", user)
	return s.issueToken(user)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.Repo.UserByID(ctx, userID)
}

// BootstrapAdmin seeds the configured admin account once. Reruns with
// the same configuration create nothing.
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      true,
	}
	err = s.Repo.CreateUserIfNotExists(ctx, &admin)
	if errors.Is(err, repo.ErrUserAlreadyExists) {
		return nil
	}
	if err == nil {
		logging.FromContext(ctx).Info("admin account created", "email", admin.Email)
	}
	return err
}

func (s *AuthService) publish(ctx context.Context, eventType string, u *models.User) {
	event := map[string]any{
		"type":    eventType,
		"user_id": u.ID,
		"email":   u.Email,
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "user_events", fmt.Sprint(u.ID), event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}
