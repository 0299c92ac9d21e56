package services

import (
	"fmt"

	"soxutil/internal/models"
	"soxutil/internal/repositories"
	"soxutil/internal/security"
)

// UserService handles business logic for user accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

// GetAll retrieves users with paging.
func (s *UserService) GetAll(skip, limit int) ([]models.User, error) {
	return s.repo.GetAll(skip, limit)
}

// Create hashes the plain password and delegates to the repository. The
// plaintext never reaches the store or the logs.
func (s *UserService) Create(input *models.UserCreate) (*models.User, error) {
	hashed, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.Create(input, hashed)
}

// Update applies a partial update to an already-loaded user.
func (s *UserService) Update(user *models.User, input *models.UserUpdate) (*models.User, error) {
	return s.repo.Update(user, input)
}

// Delete removes a user by ID and returns the pre-deletion record, or nil
// if no such user existed.
func (s *UserService) Delete(id uint) (*models.User, error) {
	return s.repo.Delete(id)
}

// Authenticate verifies an email/password pair. An unknown email and a
// wrong password both come back as (nil, nil) so the caller cannot tell
// which check failed.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !security.VerifyPassword(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}
