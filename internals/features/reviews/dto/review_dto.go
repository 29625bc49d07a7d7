package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "chaptered_backend/internals/features/reviews/model"
)

var validate = validator.New()

/* =========================
 * Request DTO
 * ========================= */

// CreateReviewDTO deliberately has no user field: the owner always comes
// from the token.
type CreateReviewDTO struct {
	Media      uuid.UUID `json:"media" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string    `json:"review_text" validate:"required"`
}

func (d *CreateReviewDTO) Validate() error {
	return validate.Struct(d)
}

func (d *CreateReviewDTO) ToModel(userID uuid.UUID) *model.ReviewModel {
	return &model.ReviewModel{
		UserID:     userID,
		MediaID:    d.Media,
		Rating:     d.Rating,
		ReviewText: d.ReviewText,
	}
}

type UpdateReviewDTO struct {
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	ReviewText *string `json:"review_text" validate:"omitempty"`
}

func (d *UpdateReviewDTO) Validate() error {
	return validate.Struct(d)
}

func (d *UpdateReviewDTO) ApplyToModelPartial(m *model.ReviewModel) {
	if d.Rating != nil {
		m.Rating = *d.Rating
	}
	if d.ReviewText != nil {
		m.ReviewText = *d.ReviewText
	}
}

/* =========================
 * Response DTO
 * ========================= */

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	User       uuid.UUID `json:"user"`
	Username   string    `json:"username"`
	Media      uuid.UUID `json:"media"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewReviewResponse(m *model.ReviewModel) *ReviewResponse {
	return &ReviewResponse{
		ID:         m.ID,
		User:       m.UserID,
		Username:   m.User.UserName,
		Media:      m.MediaID,
		Rating:     m.Rating,
		ReviewText: m.ReviewText,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
