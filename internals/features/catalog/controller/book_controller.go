package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "chaptered_backend/internals/features/catalog/dto"
	model "chaptered_backend/internals/features/catalog/model"
	helper "chaptered_backend/internals/helpers"
)

type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

// ordering fields exposed on the list endpoint
var bookOrderColumns = map[string]string{
	"title":            "title",
	"author":           "author",
	"publication_year": "publication_year",
}

func (ctl *BookController) books() *gorm.DB {
	return ctl.DB.Model(&model.MediaModel{}).Where("media_type = ?", model.MediaTypeBook)
}

/* ===========================================================
 * Public: GET /books?search=&ordering=
 * =========================================================== */
func (ctl *BookController) List(c *fiber.Ctx) error {
	q := ctl.books().WithContext(c.Context())

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(genre) LIKE ? OR LOWER(summary) LIKE ?",
			like, like, like, like,
		)
	}

	q = helper.ApplyOrdering(q, c.Query("ordering"), bookOrderColumns, "created_at ASC")

	var items []model.MediaModel
	if err := q.Find(&items).Error; err != nil {
		log.Println("[ERROR] DB list books:", err)
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
	return helper.Success(c, "Success get books", resp)
}

/* ===========================================================
 * Public: GET /books/:id
 * =========================================================== */
func (ctl *BookController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid book ID")
	}

	var m model.MediaModel
	if err := ctl.books().WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Book not found")
		}
		log.Println("[ERROR] DB get book:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), []uuid.UUID{m.ID})
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Success get book", dto.NewBookResponse(&m, avgRatingFor(ratings, m.ID)))
}

/* ===========================================================
 * Auth: POST /books
 * =========================================================== */
func (ctl *BookController) Create(c *fiber.Ctx) error {
	var body dto.CreateBookDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Println("[ERROR] DB create book:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to create book")
	}
	return helper.Created(c, "Book created", dto.NewBookResponse(m, nil))
}

/* ===========================================================
 * Auth: PUT/PATCH /books/:id
 * =========================================================== */
func (ctl *BookController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid book ID")
	}

	var m model.MediaModel
	if err := ctl.books().WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Book not found")
		}
		log.Println("[ERROR] DB get book:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	var body dto.UpdateBookDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	body.ApplyToModelPartial(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		log.Println("[ERROR] DB save book:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to update book")
	}

	ratings, err := loadAvgRatings(ctl.DB.WithContext(c.Context()), []uuid.UUID{m.ID})
	if err != nil {
		log.Println("[ERROR] DB avg ratings:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Book updated", dto.NewBookResponse(&m, avgRatingFor(ratings, m.ID)))
}

/* ===========================================================
 * Auth: DELETE /books/:id
 * =========================================================== */
func (ctl *BookController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid book ID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("id = ? AND media_type = ?", id, model.MediaTypeBook).
		Delete(&model.MediaModel{})
	if res.Error != nil {
		log.Println("[ERROR] DB delete book:", res.Error)
		return helper.Error(c, http.StatusInternalServerError, "Failed to delete book")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Book not found")
	}
	return helper.Success(c, "Book deleted", nil)
}
