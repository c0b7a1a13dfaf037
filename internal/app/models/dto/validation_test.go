package dto

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestBindingLimitsMatchColumns(t *testing.T) {
	v := newValidator(t)
	id := int64(1)

	validCourse := func() CourseRequest {
		return CourseRequest{Name: "Compilers", Code: "CS401", Credits: 4}
	}
	validPublication := func() PublicationRequest {
		return PublicationRequest{FacultyID: &id, Title: "On Compilers", PublicationDate: "2024-03-15"}
	}
	validFaculty := func() FacultyRequest {
		return FacultyRequest{UserID: 3, FirstName: "Grace", LastName: "Hopper"}
	}

	tests := []struct {
		name  string
		req   interface{}
		field string
	}{
		{"credits above cap", func() interface{} { r := validCourse(); r.Credits = 101; return r }(), "credits"},
		{"credits overflow", func() interface{} { r := validCourse(); r.Credits = 1 << 30; return r }(), "credits"},
		{"title too long", func() interface{} { r := validPublication(); r.Title = strings.Repeat("t", 256); return r }(), "title"},
		{"journal too long", func() interface{} { r := validPublication(); r.JournalName = strings.Repeat("j", 256); return r }(), "journalName"},
		{"url too long", func() interface{} {
			r := validPublication()
			r.URL = "https://example.com/" + strings.Repeat("u", 1024)
			return r
		}(), "url"},
		{"picture url too long", func() interface{} {
			r := validFaculty()
			r.ProfilePictureURL = "https://example.com/" + strings.Repeat("p", 1024)
			return r
		}(), "profilePictureUrl"},
		{"register password too long", RegisterRequest{Username: "jdoe", Email: "jdoe@university.edu", Password: strings.Repeat("p", 73)}, "password"},
		{"create password too long", CreateUserRequest{Username: "jdoe", Email: "jdoe@university.edu", Password: strings.Repeat("p", 73)}, "password"},
		{"update password too long", UpdateUserRequest{Username: "jdoe", Email: "jdoe@university.edu", Password: strings.Repeat("p", 73)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)
			detail := HandleValidationError(err)
			assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
			assert.Equal(t, tt.field, detail.Field)
		})
	}

	assert.NoError(t, v.Struct(validCourse()))
	assert.NoError(t, v.Struct(validPublication()))
	assert.NoError(t, v.Struct(validFaculty()))
	assert.NoError(t, v.Struct(RegisterRequest{Username: "jdoe", Email: "jdoe@university.edu", Password: strings.Repeat("p", 72)}))
}

func TestSemesterTag(t *testing.T) {
	v := newValidator(t)

	ok := EnrollmentKeyRequest{StudentID: 1, Semester: "Fall", Year: 2025}
	assert.NoError(t, v.Struct(ok))

	bad := ok
	bad.Semester = "20!5"
	err := v.Struct(bad)
	require.Error(t, err)
	assert.Equal(t, "semester", HandleValidationError(err).Field)
}
