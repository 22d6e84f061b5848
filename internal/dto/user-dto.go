package dto

import "asset-system/internal/entities"

func NewUserPublicDTO(u *entities.User) UserPublicDTO {
	return UserPublicDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsAdmin:  u.IsAdmin,
	}
}
