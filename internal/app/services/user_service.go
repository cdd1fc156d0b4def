package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/app/repositories"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
	"github.com/emirhan/coursehub/internal/pkg/auth"
	"github.com/emirhan/coursehub/internal/pkg/validation"
)

// Common user errors
var (
	ErrUserValidation = errors.New("user validation failed")
)

// UserService handles admin-side user account management
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// CreateUser creates a new user account with a hashed password
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrUserValidation)
	}

	if len(req.Password) < validation.PasswordMinLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrUserValidation, validation.PasswordMinLength)
	}

	role := models.RoleType(req.RoleType)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrUserValidation, req.RoleType)
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleType:  role,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", ErrUserValidation)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// SearchUsers retrieves users matching the filter with pagination
func (s *UserService) SearchUsers(ctx context.Context, filter *dto.UserFilter, offset uint64, limit int) ([]*models.User, int64, error) {
	role := models.RoleType(filter.RoleType)
	if filter.RoleType != "" && !role.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown role %q", ErrUserValidation, filter.RoleType)
	}

	users, total, err := s.userRepo.Search(ctx, filter.Query, role, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching users: %w", err)
	}

	return users, total, nil
}

// UpdateUser updates a user account. Zero-value request fields are left
// unchanged. Deactivating a user also revokes their refresh tokens.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validation.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: invalid email format", ErrUserValidation)
		}
		user.Email = email
	}
	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.RoleType != "" {
		role := models.RoleType(req.RoleType)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrUserValidation, req.RoleType)
		}
		user.RoleType = role
	}

	deactivated := false
	if req.IsActive != nil {
		deactivated = user.IsActive && !*req.IsActive
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	if deactivated {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
			return nil, fmt.Errorf("error revoking tokens of deactivated user: %w", err)
		}
	}

	return user, nil
}

// DeleteUser deletes a user account
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user ID", ErrUserValidation)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	return nil
}
