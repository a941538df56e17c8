package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrInvalidRole      = errors.New("role must be one of admin, manager, employee")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
)

// UserService handles user management business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the required information to provision a user.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// CreateUser provisions a new user. The password is hashed by the
// model hook on write.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	role, ok := models.ParseRole(input.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	if err := s.checkUnique(username, input.Email, 0); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     input.Email,
		Password:  input.Password,
		Role:      role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent create can slip past checkUnique; the unique
		// index is the backstop, so surface it as a conflict too.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if uniqueErr := s.checkUnique(username, input.Email, 0); uniqueErr != nil {
				return nil, uniqueErr
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// validatePassword bounds the raw password length. bcrypt rejects
// input beyond 72 bytes, so the cap keeps that failure out of the
// write path.
func validatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > constants.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// UpdateUserInput represents a partial user update.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	Role      *string
	FirstName *string
	LastName  *string
}

// UpdateUser applies a partial update to an existing user.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkUnique("", *input.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		user.Password = *input.Password
	}
	if input.Role != nil {
		role, ok := models.ParseRole(*input.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.userRepo.Update(user); err != nil {
		// Email is the only unique column an update can change.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user; tasks assigned to them keep existing with
// the assignee cleared.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ListUsers returns users with pagination.
func (s *UserService) ListUsers(page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// checkUnique rejects usernames and emails already held by another
// user. Empty values are skipped.
func (s *UserService) checkUnique(username, email string, selfID uint64) error {
	if username != "" {
		existing, err := s.userRepo.FindByUsername(username)
		if err == nil && existing.ID != selfID {
			return ErrUsernameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	if email != "" {
		existing, err := s.userRepo.FindByEmail(email)
		if err == nil && existing.ID != selfID {
			return ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}
	}

	return nil
}
