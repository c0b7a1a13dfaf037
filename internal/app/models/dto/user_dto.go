package dto

import (
	"time"

	"github.com/yigit/unifms/internal/app/models"
)

// CreateUserRequest represents an administrator creating an account
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email    string   `json:"email" binding:"required,email,max=100" example:"jdoe@university.edu"`
	Password string   `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	Roles    []string `json:"roles" example:"FACULTY"`
}

// UpdateUserRequest replaces a user's identity. A blank password keeps the stored one and
// omitted roles keep the current set.
type UpdateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email    string   `json:"email" binding:"required,email,max=100" example:"jdoe@university.edu"`
	Password string   `json:"password" binding:"omitempty,min=6,max=72"`
	Roles    []string `json:"roles"`
}

// UserResponse represents a user without credentials
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"jdoe"`
	Email     string    `json:"email" example:"jdoe@university.edu"`
	Roles     []string  `json:"roles" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses maps a list of user models
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
