package dto

import (
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
)

// UserDTO is the staff summary embedded in other responses
type UserDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// UserDetailDTO represents a single user in API responses
type UserDetailDTO struct {
	UserDTO
	HourlyWage float64   `json:"hourly_wage"`
	Deleted    bool      `json:"deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToUserDetailDTO converts a User model to UserDetailDTO
func ToUserDetailDTO(user models.User) UserDetailDTO {
	return UserDetailDTO{
		UserDTO:    ToUserDTO(user),
		HourlyWage: user.HourlyWage,
		Deleted:    user.Deleted,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// ToUserDTOs converts users to summaries
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}
