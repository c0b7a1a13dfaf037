package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID           int64       `json:"id" db:"id" example:"1"`
	Name         string      `json:"name" db:"name" example:"Algorithms"`
	Code         string      `json:"code" db:"code" example:"CS301"`
	Description  string      `json:"description,omitempty" db:"description"`
	Credits      int         `json:"credits" db:"credits" example:"4"`
	DepartmentID *int64      `json:"departmentId,omitempty" db:"department_id"`
	Department   *Department `json:"department,omitempty"` // Relation, no db tag
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}
