package services

import (
	"errors"
	"fmt"

	"carryloop/internal/models"
	"carryloop/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService covers the admin-side user management surface.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers lists every account.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID fetches one account.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// CreateUser creates an account on a user's behalf, defaulting the role to
// customer. A taken email is a conflict.
func (s *UserService) CreateUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %q is already in use: %w", user.Email, models.ErrConflict)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	return s.userRepo.Create(user)
}

// UserUpdate carries a partial account update. Nil fields keep their
// current values.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *string
}

// UpdateUser applies a partial update to an account.
func (s *UserService) UpdateUser(id string, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		if *update.Role != models.RoleCustomer && *update.Role != models.RoleAdmin {
			return nil, fmt.Errorf("unknown role %q: %w", *update.Role, models.ErrValidation)
		}
		user.Role = *update.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(id string) error {
	return s.userRepo.Delete(id)
}
