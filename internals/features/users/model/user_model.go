package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the identity row. The password column holds a bcrypt hash and
// never leaves the API.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null;uniqueIndex:uq_users_user_name" json:"username"`
	Email    string    `gorm:"size:255;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"`

	// Denormalized onto the user, written through the profile endpoint
	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
