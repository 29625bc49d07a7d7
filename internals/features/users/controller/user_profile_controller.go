package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "chaptered_backend/internals/features/users/dto"
	model "chaptered_backend/internals/features/users/model"
	helper "chaptered_backend/internals/helpers"
)

// UserProfileController serves /profiles. A profile merges fields from two
// tables; updates split first/last name onto the user row.
type UserProfileController struct {
	DB *gorm.DB
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{DB: db}
}

func (ctl *UserProfileController) loadWithUser(c *fiber.Ctx, id uuid.UUID) (*model.UserProfileModel, *model.UserModel, error) {
	var p model.UserProfileModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}
	var u model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&u, "id = ?", p.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &p, &u, nil
}

/* ===========================================================
 * Auth: GET /profiles (always just the caller's own)
 * =========================================================== */
func (ctl *UserProfileController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var profiles []model.UserProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Find(&profiles).Error; err != nil {
		log.Println("[ERROR] DB list profiles:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		log.Println("[ERROR] DB get user:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}

	resp := make([]*dto.UserProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.NewUserProfileResponse(&profiles[i], &user))
	}
	return helper.Success(c, "Success get profiles", resp)
}

/* ===========================================================
 * Auth: GET /profiles/:id (owner only)
 * =========================================================== */
func (ctl *UserProfileController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid profile ID")
	}

	p, u, err := ctl.loadWithUser(c, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Profile not found")
		}
		log.Println("[ERROR] DB get profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if p.UserID != userID {
		return helper.Error(c, http.StatusForbidden, "Not your profile")
	}
	return helper.Success(c, "Success get profile", dto.NewUserProfileResponse(p, u))
}

/* ===========================================================
 * Auth: POST /profiles (one per user; registration already made one)
 * =========================================================== */
func (ctl *UserProfileController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreateUserProfileDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	p := body.ToModel(userID)
	if err := ctl.DB.WithContext(c.Context()).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, http.StatusBadRequest, "Profile already exists")
		}
		log.Println("[ERROR] DB create profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to create profile")
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		log.Println("[ERROR] DB get user:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	return helper.Created(c, "Profile created", dto.NewUserProfileResponse(p, &user))
}

/* ===========================================================
 * Auth: PUT/PATCH /profiles/:id (owner only, split write)
 * =========================================================== */
func (ctl *UserProfileController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid profile ID")
	}

	p, u, err := ctl.loadWithUser(c, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Profile not found")
		}
		log.Println("[ERROR] DB get profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if p.UserID != userID {
		return helper.Error(c, http.StatusForbidden, "Not your profile")
	}

	var body dto.UpdateUserProfileDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	body.ApplyToProfilePartial(p)
	body.ApplyToUserPartial(u)

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if body.HasUserFields() {
			return tx.Save(u).Error
		}
		return nil
	})
	if err != nil {
		log.Println("[ERROR] DB save profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to update profile")
	}

	return helper.Success(c, "Profile updated", dto.NewUserProfileResponse(p, u))
}

/* ===========================================================
 * Auth: DELETE /profiles/:id (owner only)
 * =========================================================== */
func (ctl *UserProfileController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid profile ID")
	}

	var p model.UserProfileModel
	if err := ctl.DB.WithContext(c.Context()).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Profile not found")
		}
		log.Println("[ERROR] DB get profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "DB error")
	}
	if p.UserID != userID {
		return helper.Error(c, http.StatusForbidden, "Not your profile")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(&p).Error; err != nil {
		log.Println("[ERROR] DB delete profile:", err)
		return helper.Error(c, http.StatusInternalServerError, "Failed to delete profile")
	}
	return helper.Success(c, "Profile deleted", nil)
}
