package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MediaTypeBook  = "book"
	MediaTypeMovie = "movie"
)

// MediaModel is a single table tagged by media_type. Books fill
// author/publication_year, movies fill director/release_year. The
// discriminant is forced by the controllers on every save and is never
// client-writable.
type MediaModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null;index:idx_media_title" json:"title"`
	Genre     string    `gorm:"size:100;not null" json:"genre"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	MediaType string    `gorm:"size:5;not null;index:idx_media_type" json:"media_type"`

	// Book specialization
	Author          *string `gorm:"size:255" json:"author,omitempty"`
	PublicationYear *int    `gorm:"check:chk_media_publication_year,publication_year IS NULL OR publication_year > 0" json:"publication_year,omitempty"`

	// Movie specialization
	Director    *string `gorm:"size:255" json:"director,omitempty"`
	ReleaseYear *int    `gorm:"check:chk_media_release_year,release_year IS NULL OR release_year > 0" json:"release_year,omitempty"`

	// Artwork URLs from the import jobs: thumbnail links for books,
	// poster/backdrop paths for movies. Null for hand-created rows.
	ImageLinks datatypes.JSONMap `json:"image_links,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MediaModel) TableName() string {
	return "media"
}

func (m *MediaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
