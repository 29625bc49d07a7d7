package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "chaptered_backend/internals/features/favorites/model"
)

var validate = validator.New()

/* =========================
 * Request DTO
 * ========================= */

// CreateFavoriteDTO has no user field: the owner always comes from the token.
type CreateFavoriteDTO struct {
	Media    uuid.UUID `json:"media" validate:"required"`
	ListType string    `json:"list_type" validate:"omitempty,oneof=favorite wishlist"`
}

func (d *CreateFavoriteDTO) Validate() error {
	return validate.Struct(d)
}

func (d *CreateFavoriteDTO) ToModel(userID uuid.UUID) *model.FavoriteModel {
	listType := d.ListType
	if listType == "" {
		listType = model.ListTypeFavorite
	}
	return &model.FavoriteModel{
		UserID:   userID,
		MediaID:  d.Media,
		ListType: listType,
	}
}

type UpdateFavoriteDTO struct {
	Media    *uuid.UUID `json:"media" validate:"omitempty"`
	ListType *string    `json:"list_type" validate:"omitempty,oneof=favorite wishlist"`
}

func (d *UpdateFavoriteDTO) Validate() error {
	return validate.Struct(d)
}

func (d *UpdateFavoriteDTO) ApplyToModelPartial(m *model.FavoriteModel) {
	if d.Media != nil {
		m.MediaID = *d.Media
	}
	if d.ListType != nil {
		m.ListType = *d.ListType
	}
}

/* =========================
 * Response DTO
 * ========================= */

// FavoriteResponse denormalizes the media title and type so lists render
// without extra lookups.
type FavoriteResponse struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Media     uuid.UUID `json:"media"`
	Title     string    `json:"title"`
	MediaType string    `json:"media_type"`
	ListType  string    `json:"list_type"`
	DateAdded time.Time `json:"date_added"`
}

func NewFavoriteResponse(m *model.FavoriteModel) *FavoriteResponse {
	return &FavoriteResponse{
		ID:        m.ID,
		User:      m.UserID,
		Media:     m.MediaID,
		Title:     m.Media.Title,
		MediaType: m.Media.MediaType,
		ListType:  m.ListType,
		DateAdded: m.DateAdded,
	}
}
