package dto

import "github.com/yigit/unifms/internal/app/models"

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RegisterRequest represents the self-registration request body. New accounts are students.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email    string `json:"email" binding:"required,email,max=100" example:"jdoe@university.edu"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string   `json:"token"`
	Type      string   `json:"type" example:"Bearer"`
	ExpiresIn int64    `json:"expiresIn" example:"86400"`
	ID        int64    `json:"id" example:"1"`
	Username  string   `json:"username" example:"jdoe"`
	Email     string   `json:"email" example:"jdoe@university.edu"`
	Roles     []string `json:"roles" example:"STUDENT"`
}

// NewLoginResponse builds the token envelope for user
func NewLoginResponse(token string, expiresIn int64, user *models.User) LoginResponse {
	return LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: expiresIn,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.RoleNames(),
	}
}
