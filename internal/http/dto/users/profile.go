// Package users contiene DTOs de /users.
package users

import "github.com/dropDatabas3/wizauth/internal/profile"

// UpdateProfileRequest: campos ausentes no se tocan; "" vacía el campo.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=2048"`
}

func (r UpdateProfileRequest) Patch() profile.Patch {
	return profile.Patch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		AvatarURL:   r.AvatarURL,
	}
}
