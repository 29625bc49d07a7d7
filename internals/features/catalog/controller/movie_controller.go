package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "chaptered_backend/internals/features/catalog/dto"
	model "chaptered_backend/internals/features/catalog/model"
	helper "chaptered_backend/internals/helpers"
)

type MovieController struct {
	DB *gorm.DB
}

func NewMovieController(db *gorm.DB) *MovieController {
	return &MovieController{DB: db}
}

var movieOrderColumns = map[string]string{
	"title":        "title",
	"release_year": "release_year",
}

func (ctl *MovieController) movies() *gorm.DB {
	return ctl.DB.Model(&model.MediaModel{}).Where("media_type = ?", model.MediaTypeMovie)
}

/* ===========================================================
 * Public: GET /movies?search=&ordering=&genre=&release_year=
 * =========================================================== */
func (ctl *MovieController) List(c *fiber.Ctx) error {
	q := ctl.movies().WithContext(c.Context())

	// exact-match filters
	if genre := strings.TrimSpace(c.Query("genre")); genre != "" {
		q = q.Where("genre = ?", genre)
	}
	if yearStr := strings.TrimSpace(c.Query("release_year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.FieldError(c, "release_year", "must be an integer")
		}
		q = q.Where("release_year = ?", year)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(director) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(genre) LIKE ?",
			like, like, like, like,
		)
	}

	q = helper.ApplyOrdering(q, c.Query("ordering"), movieOrderColumns, "created_at ASC")

	var items []model.MediaModel
	if err := q.Find(&items).Error; err != nil {
		log.Println("[ERROR] DB list movies:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), mediaIDs(items))
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	resp := make([]*dto.MovieResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewMovieResponse(&items[i], avgRatingFor(ratings, items[i].ID)))
	}
	return helper.Success(c, "Success get movies", resp)
}

/* ===========================================================
 * Public: GET /movies/:id
 * =========================================================== */
func (ctl *MovieController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid movie ID")
	}

	var m model.MediaModel
	if err := ctl.movies().WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Println("[ERROR] DB get movie:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), []uuid.UUID{m.ID})
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Success get movie", dto.NewMovieResponse(&m, avgRatingFor(ratings, m.ID)))
}

/* ===========================================================
 * Auth: POST /movies
 * =========================================================== */
func (ctl *MovieController) Create(c *fiber.Ctx) error {
	var body dto.CreateMovieDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Println("[ERROR] DB create movie:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to create movie")
	}
	return helper.Created(c, "Movie created", dto.NewMovieResponse(m, nil))
}

/* ===========================================================
 * Auth: PUT/PATCH /movies/:id
 * =========================================================== */
func (ctl *MovieController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid movie ID")
	}

	var m model.MediaModel
	if err := ctl.movies().WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Println("[ERROR] DB get movie:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	var body dto.UpdateMovieDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	body.ApplyToModelPartial(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		log.Println("[ERROR] DB save movie:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to update movie")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), []uuid.UUID{m.ID})
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Movie updated", dto.NewMovieResponse(&m, avgRatingFor(ratings, m.ID)))
}

/* ===========================================================
 * Auth: DELETE /movies/:id
 * =========================================================== */
func (ctl *MovieController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid movie ID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("id = ? AND media_type = ?", id, model.MediaTypeMovie).
		Delete(&model.MediaModel{})
	if res.Error != nil {
		log.Println("[ERROR] DB delete movie:", res.Error)
		return helper.Error(c, http.StatusInternalServerError, "Failed to delete movie")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Movie not found")
	}
	return helper.Success(c, "Movie deleted", nil)
}
