package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
)

// User represents an account of the finance office
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DisplayName string         `gorm:"size:255;not null" json:"display_name"`
	Username    string         `gorm:"size:255;unique" json:"username"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	Role        enum.UserRole  `gorm:"size:20;not null;default:'bendahara'" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Kwitansi []Kwitansi `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user manages other accounts
func (u *User) IsAdmin() bool {
	return u.Role == enum.UserRoleAdmin
}
