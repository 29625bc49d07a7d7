package controller

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogDTO "chaptered_backend/internals/features/catalog/dto"
	catalogModel "chaptered_backend/internals/features/catalog/model"
	helper "chaptered_backend/internals/helpers"
)

// RecommendationController serves /recommendations: genre-based picks for
// reviewers, a global top-5/top-5 for everyone else.
type RecommendationController struct {
	DB *gorm.DB
}

func NewRecommendationController(db *gorm.DB) *RecommendationController {
	return &RecommendationController{DB: db}
}

const (
	personalizedLimit = 10
	fallbackLimit     = 5
)

// GET /recommendations (optional auth)
func (ctl *RecommendationController) Recommendations(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.Context())

	if userID, err := helper.GetUserIDFromToken(c); err == nil {
		recs, err := ctl.personalized(db, userID)
		if err != nil {
			log.Println("[ERROR] DB recommendations:", err)
			return helper.Error(c, http.StatusInternalServerError, "DB error")
		}
		if len(recs) > 0 {
			books, movies, err := ctl.buildResponses(db, recs)
			if err != nil {
				log.Println("[ERROR] DB recommendations:", err)
				return helper.Error(c, http.StatusInternalServerError, "DB error")
			}
			return helper.Success(c, "Success get recommendations", fiber.Map{
				"personalized": true,
				"books":        books,
				"movies":       movies,
			})
		}
	}

	// global fallback: top rated books and movies
	topBooks, err := ctl.topRated(db, catalogModel.MediaTypeBook)
	if err != nil {
		log.Println("[ERROR] DB top books:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	topMovies, err := ctl.topRated(db, catalogModel.MediaTypeMovie)
	if err != nil {
		log.Println("[ERROR] DB top movies:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	books, _, err := ctl.buildResponses(db, topBooks)
	if err != nil {
		log.Println("[ERROR] DB recommendations:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	_, movies, err := ctl.buildResponses(db, topMovies)
	if err != nil {
		log.Println("[ERROR] DB recommendations:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	return helper.Success(c, "Success get recommendations", fiber.Map{
		"personalized": false,
		"books":        books,
		"movies":       movies,
	})
}

// personalized returns up to 10 media rows in the genres the user has
// reviewed, excluding everything they already reviewed.
func (ctl *RecommendationController) personalized(db *gorm.DB, userID uuid.UUID) ([]catalogModel.MediaModel, error) {
	var genres []string
	if err := db.Table("media").
		Select("DISTINCT media.genre").
		Joins("JOIN reviews ON reviews.media_id = media.id").
		Where("reviews.user_id = ?", userID).
		Scan(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, nil
	}

	var recs []catalogModel.MediaModel
	if err := db.Model(&catalogModel.MediaModel{}).
		Where("genre IN ?", genres).
		Where("id NOT IN (?)", db.Table("reviews").Select("media_id").Where("user_id = ?", userID)).
		Limit(personalizedLimit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (ctl *RecommendationController) topRated(db *gorm.DB, mediaType string) ([]catalogModel.MediaModel, error) {
	var items []catalogModel.MediaModel
	err := db.Model(&catalogModel.MediaModel{}).
		Select("media.*").
		Joins("LEFT JOIN reviews ON reviews.media_id = media.id").
		Where("media.media_type = ?", mediaType).
		Group("media.id").
		Order("COALESCE(AVG(reviews.rating), 0) DESC").
		Limit(fallbackLimit).
		Find(&items).Error
	return items, err
}

// buildResponses splits media rows into book/movie payloads with avg ratings.
func (ctl *RecommendationController) buildResponses(db *gorm.DB, items []catalogModel.MediaModel) ([]*catalogDTO.BookResponse, []*catalogDTO.MovieResponse, error) {
	books := make([]*catalogDTO.BookResponse, 0)
	movies := make([]*catalogDTO.MovieResponse, 0)
	if len(items) == 0 {
		return books, movies, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}

	var rows []struct {
		MediaID   uuid.UUID
		AvgRating float64
	}
	if err := db.Table("reviews").
		Select("media_id, AVG(rating) AS avg_rating").
		Where("media_id IN ?", ids).
		Group("media_id").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}
	ratings := make(map[uuid.UUID]float64, len(rows))
	for _, r := range rows {
		ratings[r.MediaID] = r.AvgRating
	}

	for i := range items {
		var avg *float64
		if v, ok := ratings[items[i].ID]; ok {
			avg = &v
		}
		switch items[i].MediaType {
		case catalogModel.MediaTypeMovie:
			movies = append(movies, catalogDTO.NewMovieResponse(&items[i], avg))
		default:
			books = append(books, catalogDTO.NewBookResponse(&items[i], avg))
		}
	}
	return books, movies, nil
}
