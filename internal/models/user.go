package models

import "time"

// User represents a user account stored in PostgreSQL.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FullName       string    `json:"full_name" gorm:"type:varchar(255)"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255)"` // Never serialized
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName overrides the default GORM table name.
func (User) TableName() string { return "users" }

// UserCreate is the payload for creating a user. The plain password is
// hashed by the service and never stored.
type UserCreate struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	IsActive    *bool  `json:"is_active"`
	IsSuperuser *bool  `json:"is_superuser"`
}

// UserUpdate is the payload for partially updating a user. Only non-nil
// fields are applied.
type UserUpdate struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
}
