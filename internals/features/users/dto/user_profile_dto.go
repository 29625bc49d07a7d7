package dto

import (
	"github.com/google/uuid"

	model "chaptered_backend/internals/features/users/model"
)

/* =========================
 * Request DTO
 * ========================= */

type CreateUserProfileDTO struct {
	Bio            string `json:"bio" validate:"omitempty"`
	ProfilePicture string `json:"profile_picture" validate:"omitempty,url"`
}

func (d *CreateUserProfileDTO) Validate() error {
	return validate.Struct(d)
}

func (d *CreateUserProfileDTO) ToModel(userID uuid.UUID) *model.UserProfileModel {
	return &model.UserProfileModel{
		UserID:         userID,
		Bio:            d.Bio,
		ProfilePicture: d.ProfilePicture,
	}
}

// UpdateUserProfileDTO mixes fields from two tables: first/last name are
// written through to the user row, the rest stays on the profile.
type UpdateUserProfileDTO struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=50"`
	LastName       *string `json:"last_name" validate:"omitempty,max=50"`
	Bio            *string `json:"bio" validate:"omitempty"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

func (d *UpdateUserProfileDTO) Validate() error {
	return validate.Struct(d)
}

func (d *UpdateUserProfileDTO) ApplyToProfilePartial(p *model.UserProfileModel) {
	if d.Bio != nil {
		p.Bio = *d.Bio
	}
	if d.ProfilePicture != nil {
		p.ProfilePicture = *d.ProfilePicture
	}
}

func (d *UpdateUserProfileDTO) ApplyToUserPartial(u *model.UserModel) {
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
}

// HasUserFields reports whether the update touches the user row at all.
func (d *UpdateUserProfileDTO) HasUserFields() bool {
	return d.FirstName != nil || d.LastName != nil
}

/* =========================
 * Response DTO
 * ========================= */

type UserProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	User           uuid.UUID `json:"user"`
	UserName       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
}

func NewUserProfileResponse(p *model.UserProfileModel, u *model.UserModel) *UserProfileResponse {
	return &UserProfileResponse{
		ID:             p.ID,
		User:           p.UserID,
		UserName:       u.UserName,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            p.Bio,
		ProfilePicture: p.ProfilePicture,
	}
}
