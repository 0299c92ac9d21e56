package repositories

import "soxutil/internal/models"

// UserRepository defines the interface for user data access.
// Absent records are reported as (nil, nil); errors are reserved for
// store failures. The route layer decides what absence means.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(skip, limit int) ([]models.User, error)
	Create(input *models.UserCreate, hashedPassword string) (*models.User, error)
	Update(user *models.User, input *models.UserUpdate) (*models.User, error)
	Delete(id uint) (*models.User, error)
}
