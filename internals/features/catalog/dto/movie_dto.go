package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "chaptered_backend/internals/features/catalog/model"
)

/* =========================
 * Request DTO
 * ========================= */

type CreateMovieDTO struct {
	Title       string `json:"title" validate:"required,max=255"`
	Director    string `json:"director" validate:"required,max=255"`
	Genre       string `json:"genre" validate:"required,max=100"`
	ReleaseYear int    `json:"release_year" validate:"required,gt=0"`
	Summary     string `json:"summary" validate:"required"`

	// Ignored on purpose: the discriminant is server-controlled.
	MediaType string `json:"media_type" validate:"-"`
}

func (d *CreateMovieDTO) Validate() error {
	return validate.Struct(d)
}

func (d *CreateMovieDTO) ToModel() *model.MediaModel {
	return &model.MediaModel{
		Title:       d.Title,
		Director:    &d.Director,
		Genre:       d.Genre,
		ReleaseYear: &d.ReleaseYear,
		Summary:     d.Summary,
		MediaType:   model.MediaTypeMovie,
	}
}

type UpdateMovieDTO struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Director    *string `json:"director" validate:"omitempty,max=255"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	ReleaseYear *int    `json:"release_year" validate:"omitempty,gt=0"`
	Summary     *string `json:"summary" validate:"omitempty"`
}

func (d *UpdateMovieDTO) Validate() error {
	return validate.Struct(d)
}

func (d *UpdateMovieDTO) ApplyToModelPartial(m *model.MediaModel) {
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Director != nil {
		m.Director = d.Director
	}
	if d.Genre != nil {
		m.Genre = *d.Genre
	}
	if d.ReleaseYear != nil {
		m.ReleaseYear = d.ReleaseYear
	}
	if d.Summary != nil {
		m.Summary = *d.Summary
	}
	// regardless of caller input
	m.MediaType = model.MediaTypeMovie
}

/* =========================
 * Response DTO
 * ========================= */

type MovieResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Director    string            `json:"director"`
	Genre       string            `json:"genre"`
	ReleaseYear int               `json:"release_year"`
	Summary     string            `json:"summary"`
	MediaType   string            `json:"media_type"`
	AvgRating   *float64          `json:"avg_rating"`
	ImageLinks  datatypes.JSONMap `json:"image_links,omitempty"`
}

func NewMovieResponse(m *model.MediaModel, avgRating *float64) *MovieResponse {
	resp := &MovieResponse{
		ID:         m.ID,
		Title:      m.Title,
		Genre:      m.Genre,
		Summary:    m.Summary,
		MediaType:  m.MediaType,
		AvgRating:  avgRating,
		ImageLinks: m.ImageLinks,
	}
	if m.Director != nil {
		resp.Director = *m.Director
	}
	if m.ReleaseYear != nil {
		resp.ReleaseYear = *m.ReleaseYear
	}
	return resp
}
