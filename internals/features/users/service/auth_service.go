// internals/features/users/service/auth_service.go
package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dto "chaptered_backend/internals/features/users/dto"
	model "chaptered_backend/internals/features/users/model"
	helper "chaptered_backend/internals/helpers"
)

// ========================== REGISTER ==========================
// POST /auth/register
// Creates the user with a bcrypt hash plus an empty profile, then returns a
// freshly issued token pair alongside the public user representation.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var body dto.RegisterDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.Password != body.PasswordConfirm {
		return helper.FieldError(c, "password", "Passwords must match.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] bcrypt:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName: body.UserName,
		Email:    body.Email,
		Password: string(hashed),
	}

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserProfileModel{UserID: user.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.FieldError(c, "username", "Username already taken.")
		}
		log.Println("[ERROR] DB register:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to register")
	}

	access, refresh, err := IssueTokenPair(&user)
	if err != nil {
		log.Println("[ERROR] token issue:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	return helper.Created(c, "Registered", fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user":    dto.NewUserResponse(&user),
	})
}

// ========================== LOGIN / TOKEN ==========================
// POST /auth/token
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var body dto.LoginDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := db.WithContext(c.Context()).
		First(&user, "user_name = ?", body.UserName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		log.Println("[ERROR] DB login:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	access, refresh, err := IssueTokenPair(&user)
	if err != nil {
		log.Println("[ERROR] token issue:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	return helper.Success(c, "Logged in", fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// ========================== REFRESH ==========================
// POST /auth/token/refresh
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var body dto.RefreshDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := body.Validate(); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := userFromRefreshToken(db.WithContext(c.Context()), body.Refresh)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	access, _, err := IssueTokenPair(user)
	if err != nil {
		log.Println("[ERROR] token issue:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	return helper.Success(c, "Token refreshed", fiber.Map{
		"access": access,
	})
}

// ========================== CHANGE PASSWORD ==========================
// POST /auth/password/change (auth required)
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ChangePasswordDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if body.NewPassword == "" {
		return helper.FieldError(c, "new_password", "New password required.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] bcrypt:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	res := db.WithContext(c.Context()).Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("password", string(hashed))
	if res.Error != nil {
		log.Println("[ERROR] DB change password:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	return helper.Success(c, "Password updated successfully.", nil)
}
