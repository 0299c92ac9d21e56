package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"soxutil/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// conn guards against a database that never came up at startup; the
// failure is deferred to first use instead of aborting the process.
func (r *GORMUserRepository) conn() (*gorm.DB, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	return r.db, nil
}

// GetByID retrieves a user by primary key.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by the unique email column. No case
// normalization is applied.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetAll retrieves users in default row order with offset/limit paging.
func (r *GORMUserRepository) GetAll(skip, limit int) ([]models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Create inserts a new user row. The plain password from the input is
// discarded here; only the hash computed by the caller is persisted.
func (r *GORMUserRepository) Create(input *models.UserCreate, hashedPassword string) (*models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Email:          input.Email,
		FullName:       input.FullName,
		IsActive:       true,
		IsSuperuser:    false,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update applies only the explicitly set fields to the already-loaded
// record and persists it. The update timestamp is left untouched.
func (r *GORMUserRepository) Update(user *models.User, input *models.UserUpdate) (*models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return user, nil
}

// Delete loads the user first; if absent it returns (nil, nil) without
// touching the store, otherwise deletes the row and returns the
// pre-deletion record.
func (r *GORMUserRepository) Delete(id uint) (*models.User, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return user, nil
}
