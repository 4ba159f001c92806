package dto

import "github.com/mtakahara/project-task-api/internal/models"

// UserDTO is the public view of a user. It never carries the password
// hash.
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the payload returned by register and login. Token is
// empty when registration is refused for a duplicate email.
type AuthResponse struct {
	Token   string   `json:"token,omitempty"`
	User    *UserDTO `json:"user,omitempty"`
	Message string   `json:"message"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
