package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "chaptered_backend/internals/features/users/model"
)

var validate = validator.New()

/* =========================
 * Registration
 * ========================= */

type RegisterDTO struct {
	UserName        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

func (d *RegisterDTO) Validate() error {
	return validate.Struct(d)
}

/* =========================
 * Login / token
 * ========================= */

type LoginDTO struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (d *LoginDTO) Validate() error {
	return validate.Struct(d)
}

type RefreshDTO struct {
	Refresh string `json:"refresh" validate:"required"`
}

func (d *RefreshDTO) Validate() error {
	return validate.Struct(d)
}

type ChangePasswordDTO struct {
	NewPassword string `json:"new_password"`
}

/* =========================
 * Response DTO
 * ========================= */

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserResponse(u *model.UserModel) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		DateJoined: u.CreatedAt,
	}
}
