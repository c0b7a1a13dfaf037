package models

import "time"

// FacultyProfile is the academic profile attached one-to-one to a user account
type FacultyProfile struct {
	ID                int64       `json:"id" db:"id" example:"1"`
	UserID            int64       `json:"userId" db:"user_id" example:"3"`
	User              *User       `json:"user,omitempty"` // Relation, no db tag
	FirstName         string      `json:"firstName" db:"first_name" example:"Grace"`
	LastName          string      `json:"lastName" db:"last_name" example:"Hopper"`
	Bio               string      `json:"bio,omitempty" db:"bio"`
	ProfilePictureURL string      `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	DepartmentID      *int64      `json:"departmentId,omitempty" db:"department_id"`
	Department        *Department `json:"department,omitempty"` // Relation, no db tag
	Phone             string      `json:"phone,omitempty" db:"phone"`
	OfficeLocation    string      `json:"officeLocation,omitempty" db:"office_location"`
	HireDate          *Date       `json:"hireDate,omitempty" db:"hire_date"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name
func (f *FacultyProfile) FullName() string {
	return f.FirstName + " " + f.LastName
}
