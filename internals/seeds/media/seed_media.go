package media

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "chaptered_backend/internals/features/catalog/model"
	"chaptered_backend/internals/imports/googlebooks"
	"chaptered_backend/internals/imports/tmdb"
)

// MinimumCatalogSize is the floor below which placeholder entries are
// generated before the real import runs.
const MinimumCatalogSize = 50

var bookGenres = []string{
	"Fiction", "Science Fiction", "Fantasy", "Mystery", "Thriller",
	"Romance", "Historical Fiction", "Biography", "Self-Help", "Business",
}

var movieGenres = []string{
	"Action", "Comedy", "Drama", "Science Fiction", "Horror",
	"Romance", "Thriller", "Animation", "Documentary", "Fantasy",
}

type SeedResult struct {
	Created int
	Skipped int
}

// SeedBooksFromJSON upserts books from the fetch job's output file. Title is
// the idempotency key: existing rows are never overwritten. A missing file is
// a recoverable warning signalled by os.ErrNotExist.
func SeedBooksFromJSON(db *gorm.DB, path string) (SeedResult, error) {
	var res SeedResult

	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}

	var records []googlebooks.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return res, err
	}

	for _, rec := range records {
		if rec.Title == "" || rec.Author == "" {
			res.Skipped++
			continue
		}

		year := 2000
		if rec.PublicationYear != nil {
			year = *rec.PublicationYear
		}
		genre := rec.Genre
		if genre == "" {
			genre = "Fiction"
		}
		summary := rec.Summary
		if summary == "" {
			summary = "No summary available."
		}

		created, err := createIfTitleAbsent(db, &model.MediaModel{
			Title:           rec.Title,
			Author:          strPtr(rec.Author),
			PublicationYear: &year,
			Genre:           genre,
			Summary:         summary,
			MediaType:       model.MediaTypeBook,
			ImageLinks:      bookImageLinks(rec.ImageLinks),
		})
		if err != nil {
			res.Skipped++
			continue
		}
		if created {
			res.Created++
		}
	}

	return res, nil
}

// SeedMoviesFromJSON upserts movies from the fetch job's output file, same
// contract as SeedBooksFromJSON.
func SeedMoviesFromJSON(db *gorm.DB, path string) (SeedResult, error) {
	var res SeedResult

	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}

	var records []tmdb.MovieRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return res, err
	}

	for _, rec := range records {
		if rec.Title == "" || rec.Director == "" {
			res.Skipped++
			continue
		}

		year := 2000
		if rec.ReleaseYear != nil {
			year = *rec.ReleaseYear
		}
		genre := rec.Genre
		if genre == "" {
			genre = "Drama"
		}
		summary := rec.Summary
		if summary == "" {
			summary = "No summary available."
		}

		created, err := createIfTitleAbsent(db, &model.MediaModel{
			Title:       rec.Title,
			Director:    strPtr(rec.Director),
			ReleaseYear: &year,
			Genre:       genre,
			Summary:     summary,
			MediaType:   model.MediaTypeMovie,
			ImageLinks:  movieImageLinks(rec),
		})
		if err != nil {
			res.Skipped++
			continue
		}
		if created {
			res.Created++
		}
	}

	return res, nil
}

// createIfTitleAbsent is the upsert: create when no row of the same type
// carries the title, never touch an existing row.
func createIfTitleAbsent(db *gorm.DB, m *model.MediaModel) (bool, error) {
	var count int64
	if err := db.Model(&model.MediaModel{}).
		Where("title = ? AND media_type = ?", m.Title, m.MediaType).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureMinimumBooks backfills placeholder books up to the floor.
func EnsureMinimumBooks(db *gorm.DB, floor int) (int, error) {
	return ensureMinimum(db, floor, model.MediaTypeBook)
}

// EnsureMinimumMovies backfills placeholder movies up to the floor.
func EnsureMinimumMovies(db *gorm.DB, floor int) (int, error) {
	return ensureMinimum(db, floor, model.MediaTypeMovie)
}

func ensureMinimum(db *gorm.DB, floor int, mediaType string) (int, error) {
	var count int64
	if err := db.Model(&model.MediaModel{}).
		Where("media_type = ?", mediaType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if int(count) >= floor {
		return 0, nil
	}

	missing := floor - int(count)
	for i := 0; i < missing; i++ {
		m := fakeMedia(mediaType)
		if err := db.Create(m).Error; err != nil {
			return i, err
		}
	}
	return missing, nil
}

func fakeMedia(mediaType string) *model.MediaModel {
	m := &model.MediaModel{
		Title:     gofakeit.Sentence(3),
		Summary:   gofakeit.Paragraph(1, 5, 12, " "),
		MediaType: mediaType,
	}
	if mediaType == model.MediaTypeBook {
		year := gofakeit.Number(1900, 2023)
		m.Author = strPtr(gofakeit.Name())
		m.PublicationYear = &year
		m.Genre = gofakeit.RandomString(bookGenres)
	} else {
		year := gofakeit.Number(1950, 2023)
		m.Director = strPtr(gofakeit.Name())
		m.ReleaseYear = &year
		m.Genre = gofakeit.RandomString(movieGenres)
	}
	return m
}

// bookImageLinks keeps the thumbnail map the fetch job collected, nil when
// the volume carried none.
func bookImageLinks(links map[string]string) datatypes.JSONMap {
	if len(links) == 0 {
		return nil
	}
	out := datatypes.JSONMap{}
	for k, v := range links {
		out[k] = v
	}
	return out
}

func movieImageLinks(rec tmdb.MovieRecord) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if rec.PosterPath != "" {
		out["poster_path"] = rec.PosterPath
	}
	if rec.BackdropPath != "" {
		out["backdrop_path"] = rec.BackdropPath
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func strPtr(s string) *string { return &s }
