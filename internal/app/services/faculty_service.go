package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

const (
	kindFaculty = "Faculty"
	kindUser    = "User"
)

// FacultyInput carries the writable faculty profile fields
type FacultyInput struct {
	UserID            int64
	FirstName         string
	LastName          string
	Bio               string
	ProfilePictureURL string
	DepartmentID      *int64
	Phone             string
	OfficeLocation    string
	HireDate          *models.Date
}

func (in *FacultyInput) normalize() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	switch {
	case in.UserID <= 0:
		return apperrors.NewValidationError("userId is required")
	case in.FirstName == "" || in.LastName == "":
		return apperrors.NewValidationError("first and last name cannot be empty")
	case utf8.RuneCountInString(in.FirstName) > 255 || utf8.RuneCountInString(in.LastName) > 255:
		return apperrors.NewValidationError("first and last name must be at most 255 characters")
	case utf8.RuneCountInString(in.ProfilePictureURL) > 1024:
		return apperrors.NewValidationError("profilePictureUrl must be at most 1024 characters")
	case utf8.RuneCountInString(in.Phone) > 32:
		return apperrors.NewValidationError("phone must be at most 32 characters")
	case utf8.RuneCountInString(in.OfficeLocation) > 255:
		return apperrors.NewValidationError("officeLocation must be at most 255 characters")
	}
	return nil
}

func (in FacultyInput) references() []reference {
	refs := []reference{requiredRef(kindUser, in.UserID, userExists)}
	return append(refs, optionalRef(kindDepartment, in.DepartmentID, departmentExists)...)
}

func (in FacultyInput) apply(f *models.FacultyProfile) {
	f.UserID = in.UserID
	f.FirstName = in.FirstName
	f.LastName = in.LastName
	f.Bio = in.Bio
	f.ProfilePictureURL = in.ProfilePictureURL
	f.DepartmentID = in.DepartmentID
	f.Phone = in.Phone
	f.OfficeLocation = in.OfficeLocation
	f.HireDate = in.HireDate
}

// a user has at most one faculty profile
func facultyUserField(userID int64) uniqueField {
	return uniqueField{
		field: "userId",
		value: userID,
		owner: ownerOf(func(ctx context.Context, tx repositories.Store) (*models.FacultyProfile, error) {
			return tx.Faculty().GetByUserID(ctx, userID)
		}, func(f *models.FacultyProfile) int64 { return f.ID }),
	}
}

// FacultyService handles faculty profile operations
type FacultyService struct {
	store repositories.Store
	integrity
}

// NewFacultyService creates a new FacultyService
func NewFacultyService(store repositories.Store) *FacultyService {
	return &FacultyService{store: store, integrity: integrity{store: store}}
}

func (s *FacultyService) List(ctx context.Context) ([]*models.FacultyProfile, error) {
	return s.store.Faculty().List(ctx)
}

func (s *FacultyService) GetByID(ctx context.Context, id int64) (*models.FacultyProfile, error) {
	f, err := s.store.Faculty().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, kindFaculty, id)
	}
	return f, nil
}

// GetByUserID returns the profile attached to a user account
func (s *FacultyService) GetByUserID(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	f, err := s.store.Faculty().GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Faculty profile for user", userID)
	}
	return f, nil
}

func (s *FacultyService) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.FacultyProfile, error) {
	if _, err := s.store.Departments().GetByID(ctx, departmentID); err != nil {
		return nil, notFound(err, kindDepartment, departmentID)
	}
	return s.store.Faculty().ListByDepartment(ctx, departmentID)
}

// Search matches first name, last name or bio case-insensitively
func (s *FacultyService) Search(ctx context.Context, keyword string) ([]*models.FacultyProfile, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperrors.NewValidationError("keyword cannot be empty")
	}
	return s.store.Faculty().Search(ctx, keyword)
}

func (s *FacultyService) Create(ctx context.Context, in FacultyInput) (*models.FacultyProfile, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	profile := &models.FacultyProfile{}
	in.apply(profile)
	err := s.run(ctx, mutation{
		kind:   kindFaculty,
		refs:   in.references(),
		unique: []uniqueField{facultyUserField(in.UserID)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			if err := tx.Faculty().Create(ctx, profile); err != nil {
				return err
			}
			created, err := tx.Faculty().GetByID(ctx, profile.ID)
			if err != nil {
				return err
			}
			profile = created
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("facultyID", profile.ID).Int64("userID", profile.UserID).Msg("Faculty profile created")
	return profile, nil
}

func (s *FacultyService) Update(ctx context.Context, id int64, in FacultyInput) (*models.FacultyProfile, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var profile *models.FacultyProfile
	err := s.run(ctx, mutation{
		kind:     kindFaculty,
		targetID: id,
		selfID:   id,
		target: func(ctx context.Context, tx repositories.Store) (err error) {
			profile, err = tx.Faculty().GetByID(ctx, id)
			return err
		},
		refs:   in.references(),
		unique: []uniqueField{facultyUserField(in.UserID)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			in.apply(profile)
			if err := tx.Faculty().Update(ctx, profile); err != nil {
				return err
			}
			updated, err := tx.Faculty().GetByID(ctx, id)
			if err != nil {
				return err
			}
			profile = updated
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile with its publications and teaching assignments
func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, kindFaculty, id, func(ctx context.Context, tx repositories.Store) error {
		return tx.Faculty().Delete(ctx, id)
	})
}
