package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	userModel "chaptered_backend/internals/features/users/model"
)

// ReviewModel holds a 1-5 star rating. One review per (user, media) pair,
// enforced by the composite unique index.
type ReviewModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reviews_user_media" json:"user"`
	MediaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_reviews_user_media" json:"media"`

	Rating     int    `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string `gorm:"type:text;not null" json:"review_text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  userModel.UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Media catalogModel.MediaModel `gorm:"foreignKey:MediaID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
