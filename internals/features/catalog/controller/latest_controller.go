package controller

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "chaptered_backend/internals/features/catalog/dto"
	model "chaptered_backend/internals/features/catalog/model"
	helper "chaptered_backend/internals/helpers"
)

// LatestController serves the /latest endpoints. "Latest" means highest
// publication/release year, not row creation time.
type LatestController struct {
	DB *gorm.DB
}

func NewLatestController(db *gorm.DB) *LatestController {
	return &LatestController{DB: db}
}

const latestLimit = 5

// GET /latest/books
func (ctl *LatestController) LatestBooks(c *fiber.Ctx) error {
	var items []model.MediaModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("media_type = ?", model.MediaTypeBook).
		Order("publication_year DESC").
		Limit(latestLimit).
		Find(&items).Error; err != nil {
		log.Println("[ERROR] DB latest books:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), mediaIDs(items))
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	resp := make([]*dto.BookResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewBookResponse(&items[i], avgRatingFor(ratings, items[i].ID)))
	}
	return helper.Success(c, "Success get latest books", resp)
}

// GET /latest/movies
func (ctl *LatestController) LatestMovies(c *fiber.Ctx) error {
	var items []model.MediaModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("media_type = ?", model.MediaTypeMovie).
		Order("release_year DESC").
		Limit(latestLimit).
		Find(&items).Error; err != nil {
		log.Println("[ERROR] DB latest movies:", err)
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
	return helper.Success(c, "Success get latest movies", resp)
}
