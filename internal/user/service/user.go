// Package service implements account registration, login and profile
// management for portal users.
package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jansunwai/jansunwai-backend/internal/auth/jwt"
	"github.com/jansunwai/jansunwai-backend/internal/user/domain"
	"github.com/jansunwai/jansunwai-backend/internal/user/repository"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
	"github.com/jansunwai/jansunwai-backend/pkg/permissions"
)

// EventSink publishes user lifecycle events. Delivery is best effort.
type EventSink interface {
	UserRegistered(ctx context.Context, event *messaging.UserRegisteredEvent)
	UserUpdated(ctx context.Context, event *messaging.UserUpdatedEvent)
}

// UserService handles user account logic
type UserService struct {
	repo       *repository.UserRepository
	jwtManager *jwt.Manager
	events     EventSink
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository, jwtManager *jwt.Manager, pub EventSink, log *logger.Logger) *UserService {
	return &UserService{
		repo:       repo,
		jwtManager: jwtManager,
		events:     pub,
		logger:     log,
	}
}

// RegisterRequest represents a citizen registration request
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=100"`
	District *string `json:"district,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	TokenType    string          `json:"token_type"`
	User         *domain.Profile `json:"user"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=100"`
	District *string `json:"district,omitempty" validate:"omitempty,max=100"`
}

// Register creates a citizen account
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         permissions.RoleCitizen,
		State:        req.State,
		District:     req.District,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("citizen registered")

	event := &messaging.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
	if user.State != nil {
		event.State = *user.State
	}
	if user.District != nil {
		event.District = *user.District
	}
	s.events.UserRegistered(ctx, event)

	return user.ToProfile(), nil
}

// Login authenticates a user and returns a token pair
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, errors.InvalidCredentials()
	}

	if !user.IsActive {
		return nil, errors.Forbidden("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	tokens, err := s.jwtManager.GenerateTokenPair(&jwt.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return nil, errors.Internal("failed to generate tokens")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		TokenType:    tokens.TokenType,
		User:         user.ToProfile(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Unauthorized("account no longer exists")
	}
	if !user.IsActive {
		return nil, errors.Forbidden("account is disabled")
	}

	return s.jwtManager.GenerateTokenPair(&jwt.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// GetProfile returns the profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

// UpdateProfile applies partial updates to a user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Name != nil {
		user.Name = *req.Name
		changed["name"] = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
		changed["phone"] = *req.Phone
	}
	if req.State != nil {
		user.State = req.State
		changed["state"] = *req.State
	}
	if req.District != nil {
		user.District = req.District
		changed["district"] = *req.District
	}

	if len(changed) == 0 {
		return user.ToProfile(), nil
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.events.UserUpdated(ctx, &messaging.UserUpdatedEvent{UserID: user.ID, Fields: changed})

	return user.ToProfile(), nil
}
