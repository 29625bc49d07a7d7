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

	catalogModel "chaptered_backend/internals/features/catalog/model"
	dto "chaptered_backend/internals/features/reviews/dto"
	model "chaptered_backend/internals/features/reviews/model"
	helper "chaptered_backend/internals/helpers"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

var reviewOrderColumns = map[string]string{
	"created_at": "created_at",
	"rating":     "rating",
}

/* ===========================================================
 * Public: GET /reviews?media=&user=&rating=&ordering=
 *
 * media_id / book_id / movie_id are legacy synonyms that each narrow to a
 * single media id; media_id wins over book_id wins over movie_id. Worth
 * deprecating to one parameter, kept as-is for the web app.
 * =========================================================== */
func (ctl *ReviewController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).Model(&model.ReviewModel{})

	if mediaStr := strings.TrimSpace(c.Query("media")); mediaStr != "" {
		mediaID, err := uuid.Parse(mediaStr)
		if err != nil {
			return helper.FieldError(c, "media", "must be a valid ID")
		}
		q = q.Where("media_id = ?", mediaID)
	}
	if userStr := strings.TrimSpace(c.Query("user")); userStr != "" {
		userID, err := uuid.Parse(userStr)
		if err != nil {
			return helper.FieldError(c, "user", "must be a valid ID")
		}
		q = q.Where("user_id = ?", userID)
	}
	if ratingStr := strings.TrimSpace(c.Query("rating")); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil {
			return helper.FieldError(c, "rating", "must be an integer")
		}
		q = q.Where("rating = ?", rating)
	}

	// legacy synonym params, precedence fixed
	for _, param := range []string{"media_id", "book_id", "movie_id"} {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			mediaID, err := uuid.Parse(v)
			if err != nil {
				return helper.FieldError(c, param, "must be a valid ID")
			}
			q = q.Where("media_id = ?", mediaID)
			break
		}
	}

	q = helper.ApplyOrdering(q, c.Query("ordering"), reviewOrderColumns, "created_at DESC")

	var items []model.ReviewModel
	if err := q.Preload("User").Find(&items).Error; err != nil {
		log.Println("[ERROR] DB list reviews:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	resp := make([]*dto.ReviewResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewReviewResponse(&items[i]))
	}
	return helper.Success(c, "Success get reviews", resp)
}

/* ===========================================================
 * Public: GET /reviews/:id
 * =========================================================== */
func (ctl *ReviewController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid review ID")
	}

	var m model.ReviewModel
	if err := ctl.DB.WithContext(c.Context()).Preload("User").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Review not found")
		}
		log.Println("[ERROR] DB get review:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Success get review", dto.NewReviewResponse(&m))
}

/* ===========================================================
 * Auth: POST /reviews (owner comes from the token)
 * =========================================================== */
func (ctl *ReviewController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreateReviewDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	// the media FK must reference an existing row
	var mediaCount int64
	if err := ctl.DB.WithContext(c.Context()).Model(&catalogModel.MediaModel{}).
		Where("id = ?", body.Media).Count(&mediaCount).Error; err != nil {
		log.Println("[ERROR] DB media lookup:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if mediaCount == 0 {
		return helper.FieldError(c, "media", "media does not exist")
	}

	m := body.ToModel(userID)
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, http.StatusBadRequest, "You have already reviewed this media")
		}
		log.Println("[ERROR] DB create review:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to create review")
	}

	if err := ctl.DB.WithContext(c.Context()).Preload("User").First(m, "id = ?", m.ID).Error; err != nil {
		log.Println("[ERROR] DB reload review:", err)
	}
	return helper.Created(c, "Review created", dto.NewReviewResponse(m))
}

/* ===========================================================
 * Auth: PUT/PATCH /reviews/:id (owner only)
 * =========================================================== */
func (ctl *ReviewController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid review ID")
	}

	var m model.ReviewModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Review not found")
		}
		log.Println("[ERROR] DB get review:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if m.UserID != userID {
		return helper.Error(c, http.StatusForbidden, "Not your review")
	}

	var body dto.UpdateReviewDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	body.ApplyToModelPartial(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		log.Println("[ERROR] DB save review:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to update review")
	}

	if err := ctl.DB.WithContext(c.Context()).Preload("User").First(&m, "id = ?", m.ID).Error; err != nil {
		log.Println("[ERROR] DB reload review:", err)
	}
	return helper.Success(c, "Review updated", dto.NewReviewResponse(&m))
}

/* ===========================================================
 * Auth: DELETE /reviews/:id (owner only)
 * =========================================================== */
func (ctl *ReviewController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid review ID")
	}

	var m model.ReviewModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Review not found")
		}
		log.Println("[ERROR] DB get review:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if m.UserID != userID {
		return helper.Error(c, http.StatusForbidden, "Not your review")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		log.Println("[ERROR] DB delete review:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to delete review")
	}
	return helper.Success(c, "Review deleted", nil)
}
