package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/auth"
	"github.com/yigit/cems/internal/pkg/validation"
)

// Authentication failures as shown to clients
var (
	ErrBadCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	ErrTokenExpired   = apperrors.NewCustomError(apperrors.ErrTokenExpired, "Not authorized, token expired")
	ErrTokenFailed    = apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Not authorized, token failed")
	ErrUserGone       = apperrors.NewCustomError(apperrors.ErrUnauthorized, "Not authorized, user not found")
)

// AuthService defines account and session operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Authenticate verifies a session token and resolves its user
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, requester *models.User, userID int64) error
}

type authServiceImpl struct {
	repos      *repositories.Repositories
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *authServiceImpl) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Signup creates an account and signs the user in
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := validation.NormalizeEmail(req.Email)
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	if err := validation.ValidateSignup(name, email, req.Password, role); err != nil {
		return nil, err
	}

	// Check if email already exists
	exists, err := s.repos.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		RoleType: role,
	}
	// The unique index still decides a concurrent signup race
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User signed up")
	return s.authResponse(user)
}

// Login checks credentials and issues a token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repos.Users.GetByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Password mismatch")
		return nil, ErrBadCredentials
	}

	return s.authResponse(user)
}

// Authenticate maps token failures onto the auth taxonomy and loads the user
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenFailed
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// GetProfile returns the user with the events they registered for and created
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	registered, err := s.repos.Events.ListRegisteredByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading registered events: %w", err)
	}
	created, err := s.repos.Events.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading created events: %w", err)
	}

	return &dto.ProfileResponse{
		UserResponse:     dto.ToUserResponse(user),
		RegisteredEvents: registered,
		CreatedEvents:    created,
	}, nil
}

// ListUsers returns every account
func (s *authServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return dto.ToUserResponses(users), nil
}

// DeleteUser removes an account with its registrations and conversations
func (s *authServiceImpl) DeleteUser(ctx context.Context, requester *models.User, userID int64) error {
	if requester.ID == userID {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	if err := s.repos.Users.Delete(ctx, userID); err != nil {
		return err
	}

	// Conversations may live in a separate store
	if err := s.repos.Conversations.DeleteByUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete conversations of deleted user")
	}

	s.logger.Info().Int64("userID", userID).Int64("deletedBy", requester.ID).Msg("User deleted")
	return nil
}
