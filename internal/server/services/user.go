// Package services contains server-side business logic. UserService handles
// registration, login and bearer-token authentication.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/auth"
	"github.com/dmitrijs2005/culinaryshare/internal/server/config"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/repomanager"
)

// Session is what register and login hand back to the client.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type UserService struct {
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user and signs them in.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, common.WithMessage(common.ErrValidation, "Please fill in all fields")
	}

	repo := s.repomanager.Users()

	if taken, err := s.taken(ctx, email, username); err != nil {
		return nil, err
	} else if taken {
		return nil, common.WithMessage(common.ErrValidation, "User already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WithMessage(common.ErrValidation, "User already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(user)
}

// Login checks the credentials and issues a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.WithMessage(common.ErrValidation, "Please fill in all fields")
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorUnauthorized, "Invalid email or password")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, common.WithMessage(common.ErrorUnauthorized, "Invalid email or password")
	}

	return s.newSession(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.WithMessage(common.ErrorUnauthorized, "Not authorized, no token")
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.WithMessage(common.ErrorUnauthorized, "Not authorized, token failed")
	}

	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorUnauthorized, "Not authorized, user not found")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// GetProfile returns the user with the current saved set.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	saved, err := repo.SavedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading saved recipes: %w", err)
	}
	user.SavedRecipes = saved

	return user, nil
}

func (s *UserService) taken(ctx context.Context, email, username string) (bool, error) {
	repo := s.repomanager.Users()

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("error loading user: %w", err)
	}

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("error loading user: %w", err)
	}

	return false, nil
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	if user.SavedRecipes == nil {
		user.SavedRecipes = []string{}
	}
	return &Session{User: user, Token: token}, nil
}
