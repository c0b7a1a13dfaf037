package dto

// DepartmentRequest represents department create and update bodies
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Computer Science"`
	Description string `json:"description" example:"Department of Computer Science"`
}

// CourseRequest represents course create and update bodies
type CourseRequest struct {
	Name         string `json:"name" binding:"required,max=200" example:"Algorithms"`
	Code         string `json:"code" binding:"required,max=20" example:"CS301"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" binding:"required,gt=0,lte=100" example:"4"`
	DepartmentID *int64 `json:"departmentId" example:"1"`
}

// FacultyRequest represents faculty profile create and update bodies
type FacultyRequest struct {
	UserID            int64  `json:"userId" binding:"required,gt=0" example:"3"`
	FirstName         string `json:"firstName" binding:"required,max=100" example:"Grace"`
	LastName          string `json:"lastName" binding:"required,max=100" example:"Hopper"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl" binding:"omitempty,url,max=1024"`
	DepartmentID      *int64 `json:"departmentId" example:"1"`
	Phone             string `json:"phone" binding:"max=20"`
	OfficeLocation    string `json:"officeLocation" binding:"max=100"`
	HireDate          string `json:"hireDate" binding:"omitempty,datetime=2006-01-02" example:"2020-09-01"`
}

// PublicationRequest represents publication create and update bodies. On update a missing
// facultyId keeps the current author.
type PublicationRequest struct {
	FacultyID       *int64 `json:"facultyId" example:"1"`
	Title           string `json:"title" binding:"required,max=255" example:"On Compilers"`
	PublicationDate string `json:"publicationDate" binding:"required,datetime=2006-01-02" example:"2024-03-15"`
	JournalName     string `json:"journalName" binding:"max=255"`
	URL             string `json:"url" binding:"omitempty,url,max=1024"`
	AbstractText    string `json:"abstractText"`
	DOI             string `json:"doi" binding:"max=100"`
}
