package dto

import (
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Avatar    string     `json:"avatar,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// NewUserDTO converts a user, dropping the password hash
func NewUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Avatar:    u.Avatar,
		LastLogin: u.LastLogin,
	}
}
