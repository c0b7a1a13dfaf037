package models

import "time"

// Publication belongs to exactly one faculty profile
type Publication struct {
	ID              int64           `json:"id" db:"id" example:"1"`
	FacultyID       int64           `json:"facultyId" db:"faculty_id" example:"1"`
	Faculty         *FacultyProfile `json:"faculty,omitempty"` // Relation, no db tag
	Title           string          `json:"title" db:"title"`
	PublicationDate Date            `json:"publicationDate" db:"publication_date"`
	JournalName     string          `json:"journalName,omitempty" db:"journal_name"`
	URL             string          `json:"url,omitempty" db:"url"`
	AbstractText    string          `json:"abstractText,omitempty" db:"abstract_text"`
	DOI             string          `json:"doi,omitempty" db:"doi"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}
