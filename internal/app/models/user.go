package models

import (
	"time"
)

// Role is immutable reference data
type Role struct {
	ID   int64    `json:"id" db:"id" example:"1"`
	Name RoleName `json:"name" db:"name" example:"ADMIN"`
}

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"jdoe"`
	Email     string    `json:"email" db:"email" example:"jdoe@university.edu"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RoleNames flattens the user's roles into their names
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}

// HasRole reports whether the user holds role
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}
