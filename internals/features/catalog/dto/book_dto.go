package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "chaptered_backend/internals/features/catalog/model"
)

var validate = validator.New()

/* =========================
 * Request DTO
 * ========================= */

type CreateBookDTO struct {
	Title           string `json:"title" validate:"required,max=255"`
	Author          string `json:"author" validate:"required,max=255"`
	Genre           string `json:"genre" validate:"required,max=100"`
	PublicationYear int    `json:"publication_year" validate:"required,gt=0"`
	Summary         string `json:"summary" validate:"required"`

	// Ignored on purpose: the discriminant is server-controlled.
	MediaType string `json:"media_type" validate:"-"`
}

func (d *CreateBookDTO) Validate() error {
	return validate.Struct(d)
}

func (d *CreateBookDTO) ToModel() *model.MediaModel {
	return &model.MediaModel{
		Title:           d.Title,
		Author:          &d.Author,
		Genre:           d.Genre,
		PublicationYear: &d.PublicationYear,
		Summary:         d.Summary,
		MediaType:       model.MediaTypeBook,
	}
}

// PATCH / PUT partial: only non-nil fields overwrite
type UpdateBookDTO struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Author          *string `json:"author" validate:"omitempty,max=255"`
	Genre           *string `json:"genre" validate:"omitempty,max=100"`
	PublicationYear *int    `json:"publication_year" validate:"omitempty,gt=0"`
	Summary         *string `json:"summary" validate:"omitempty"`
}

func (d *UpdateBookDTO) Validate() error {
	return validate.Struct(d)
}

func (d *UpdateBookDTO) ApplyToModelPartial(m *model.MediaModel) {
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Author != nil {
		m.Author = d.Author
	}
	if d.Genre != nil {
		m.Genre = *d.Genre
	}
	if d.PublicationYear != nil {
		m.PublicationYear = d.PublicationYear
	}
	if d.Summary != nil {
		m.Summary = *d.Summary
	}
	// regardless of caller input
	m.MediaType = model.MediaTypeBook
}

/* =========================
 * Response DTO
 * ========================= */

type BookResponse struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	Genre           string            `json:"genre"`
	PublicationYear int               `json:"publication_year"`
	Summary         string            `json:"summary"`
	MediaType       string            `json:"media_type"`
	AvgRating       *float64          `json:"avg_rating"`
	ImageLinks      datatypes.JSONMap `json:"image_links,omitempty"`
}

func NewBookResponse(m *model.MediaModel, avgRating *float64) *BookResponse {
	resp := &BookResponse{
		ID:         m.ID,
		Title:      m.Title,
		Genre:      m.Genre,
		Summary:    m.Summary,
		MediaType:  m.MediaType,
		AvgRating:  avgRating,
		ImageLinks: m.ImageLinks,
	}
	if m.Author != nil {
		resp.Author = *m.Author
	}
	if m.PublicationYear != nil {
		resp.PublicationYear = *m.PublicationYear
	}
	return resp
}
