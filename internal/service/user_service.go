package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutellove/internal/auth"
	"nutellove/internal/model"
	"nutellove/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewUserService creates a new account service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account and signs the user in.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("register request is nil")
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, model.NewMissingFieldError("username")
	}
	if req.Password1 == "" {
		return nil, model.NewMissingFieldError("password1")
	}

	if err := auth.ValidatePassword(username, req.Password1, req.Password2, req.Email); err != nil {
		s.logger.Debug().Str("username", username).Err(err).Msg("password rejected")
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password1)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, model.ErrUsernameTaken
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return s.issue(user)
}

// Login checks credentials and returns a signed token.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to get user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("username", req.Username).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Account returns the user behind id.
func (s *userService) Account(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, model.ErrUnauthorised
	}

	return user, nil
}

// ChangePassword replaces the password and returns a fresh token.
func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, req *model.ChangePasswordRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("change password request is nil")
	}

	user, err := s.Account(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		s.logger.Warn().Str("user_id", id.String()).Msg("old password rejected")
		return nil, model.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(user.Username, req.NewPassword1, req.NewPassword2, user.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.NewPassword1)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, model.ErrUnauthorised) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update password")
		return nil, fmt.Errorf("failed to change password: %w", err)
	}
	user.PasswordHash = hash

	s.logger.Info().Str("user_id", id.String()).Msg("password changed")

	return s.issue(user)
}

func (s *userService) issue(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}

	return &model.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
