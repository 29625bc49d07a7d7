package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	userModel "chaptered_backend/internals/features/users/model"
)

const (
	ListTypeFavorite = "favorite"
	ListTypeWishlist = "wishlist"
)

// FavoriteModel tags a media row as favorite or wishlist for one user. At
// most one row per (user, media, list_type).
type FavoriteModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_media_list" json:"user"`
	MediaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_media_list" json:"media"`

	ListType  string    `gorm:"size:10;not null;default:favorite;uniqueIndex:uq_favorites_user_media_list" json:"list_type"`
	DateAdded time.Time `gorm:"autoCreateTime" json:"date_added"`

	User  userModel.UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Media catalogModel.MediaModel `gorm:"foreignKey:MediaID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

func (f *FavoriteModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
