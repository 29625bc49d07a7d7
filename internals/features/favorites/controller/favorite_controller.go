package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	dto "chaptered_backend/internals/features/favorites/dto"
	model "chaptered_backend/internals/features/favorites/model"
	helper "chaptered_backend/internals/helpers"
)

// FavoriteController scopes every query to the caller. Another user's rows
// are indistinguishable from missing rows (404, never 403).
type FavoriteController struct {
	DB *gorm.DB
}

func NewFavoriteController(db *gorm.DB) *FavoriteController {
	return &FavoriteController{DB: db}
}

func (ctl *FavoriteController) mine(userID uuid.UUID) *gorm.DB {
	return ctl.DB.Model(&model.FavoriteModel{}).Where("user_id = ?", userID)
}

/* ===========================================================
 * Auth: GET /favorites
 * =========================================================== */
func (ctl *FavoriteController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var items []model.FavoriteModel
	if err := ctl.mine(userID).WithContext(c.Context()).
		Preload("Media").
		Order("date_added DESC").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] DB list favorites:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	resp := make([]*dto.FavoriteResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewFavoriteResponse(&items[i]))
	}
	return helper.Success(c, "Success get favorites", resp)
}

/* ===========================================================
 * Auth: GET /favorites/:id
 * =========================================================== */
func (ctl *FavoriteController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid favorite ID")
	}

	var m model.FavoriteModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Media").
		Where("user_id = ?", userID).
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Favorite not found")
		}
		log.Println("[ERROR] DB get favorite:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Success(c, "Success get favorite", dto.NewFavoriteResponse(&m))
}

/* ===========================================================
 * Auth: POST /favorites (owner comes from the token)
 * =========================================================== */
func (ctl *FavoriteController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreateFavoriteDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

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
			return helper.Error(c, http.StatusBadRequest, "Already in this list")
		}
		log.Println("[ERROR] DB create favorite:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to create favorite")
	}

	if err := ctl.DB.WithContext(c.Context()).Preload("Media").First(m, "id = ?", m.ID).Error; err != nil {
		log.Println("[ERROR] DB reload favorite:", err)
	}
	return helper.Created(c, "Favorite created", dto.NewFavoriteResponse(m))
}

/* ===========================================================
 * Auth: PUT/PATCH /favorites/:id
 * =========================================================== */
func (ctl *FavoriteController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid favorite ID")
	}

	var m model.FavoriteModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Favorite not found")
		}
		log.Println("[ERROR] DB get favorite:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	var body dto.UpdateFavoriteDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	if body.Media != nil {
		var mediaCount int64
		if err := ctl.DB.WithContext(c.Context()).Model(&catalogModel.MediaModel{}).
			Where("id = ?", *body.Media).Count(&mediaCount).Error; err != nil {
			log.Println("[ERROR] DB media lookup:", err)
			return helper.Error(c, http.StatusInternalServerError, "DB error")
		}
		if mediaCount == 0 {
			return helper.FieldError(c, "media", "media does not exist")
		}
	}

	body.ApplyToModelPartial(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, http.StatusBadRequest, "Already in this list")
		}
		log.Println("[ERROR] DB save favorite:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to update favorite")
	}

	if err := ctl.DB.WithContext(c.Context()).Preload("Media").First(&m, "id = ?", m.ID).Error; err != nil {
		log.Println("[ERROR] DB reload favorite:", err)
	}
	return helper.Success(c, "Favorite updated", dto.NewFavoriteResponse(&m))
}

/* ===========================================================
 * Auth: DELETE /favorites/:id
 * =========================================================== */
func (ctl *FavoriteController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid favorite ID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.FavoriteModel{})
	if res.Error != nil {
		log.Println("[ERROR] DB delete favorite:", res.Error)
		return helper.Error(c, http.StatusInternalServerError, "Failed to delete favorite")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, http.StatusNotFound, "Favorite not found")
	}
	return helper.Success(c, "Favorite deleted", nil)
}

/* ===========================================================
 * Auth: GET /user/favorites (digest, split by list_type)
 * =========================================================== */
func (ctl *FavoriteController) UserFavorites(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var items []model.FavoriteModel
	if err := ctl.mine(userID).WithContext(c.Context()).
		Preload("Media").
		Order("date_added DESC").
		Find(&items).Error; err != nil {
		log.Println("[ERROR] DB user favorites:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	favorites := make([]*dto.FavoriteResponse, 0)
	wishlist := make([]*dto.FavoriteResponse, 0)
	for i := range items {
		switch items[i].ListType {
		case model.ListTypeWishlist:
			wishlist = append(wishlist, dto.NewFavoriteResponse(&items[i]))
		default:
			favorites = append(favorites, dto.NewFavoriteResponse(&items[i]))
		}
	}

	return helper.Success(c, "Success get user favorites", fiber.Map{
		"favorites": favorites,
		"wishlist":  wishlist,
	})
}
