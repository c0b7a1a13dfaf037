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

const kindDepartment = "Department"

// DepartmentInput carries the writable department fields
type DepartmentInput struct {
	Name        string
	Description string
}

// DepartmentService handles department-related operations
type DepartmentService struct {
	store repositories.Store
	integrity
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(store repositories.Store) *DepartmentService {
	return &DepartmentService{store: store, integrity: integrity{store: store}}
}

func (in *DepartmentInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return apperrors.NewValidationError("department name cannot be empty")
	case utf8.RuneCountInString(in.Name) > 255:
		return apperrors.NewValidationError("department name must be at most 255 characters")
	}
	return nil
}

func departmentNameField(name string) uniqueField {
	return uniqueField{
		field: "name",
		value: name,
		owner: ownerOf(func(ctx context.Context, tx repositories.Store) (*models.Department, error) {
			return tx.Departments().GetByName(ctx, name)
		}, func(d *models.Department) int64 { return d.ID }),
	}
}

// List returns every department
func (s *DepartmentService) List(ctx context.Context) ([]*models.Department, error) {
	return s.store.Departments().List(ctx)
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	d, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, kindDepartment, id)
	}
	return d, nil
}

// Create creates a new department with a unique name
func (s *DepartmentService) Create(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	department := &models.Department{Name: in.Name, Description: in.Description}
	err := s.run(ctx, mutation{
		kind:   kindDepartment,
		unique: []uniqueField{departmentNameField(in.Name)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			return tx.Departments().Create(ctx, department)
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("departmentID", department.ID).Str("name", department.Name).Msg("Department created")
	return department, nil
}

// Update replaces name and description. Keeping the current name is not a conflict.
func (s *DepartmentService) Update(ctx context.Context, id int64, in DepartmentInput) (*models.Department, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var department *models.Department
	err := s.run(ctx, mutation{
		kind:     kindDepartment,
		targetID: id,
		selfID:   id,
		target: func(ctx context.Context, tx repositories.Store) (err error) {
			department, err = tx.Departments().GetByID(ctx, id)
			return err
		},
		unique: []uniqueField{departmentNameField(in.Name)},
		apply: func(ctx context.Context, tx repositories.Store) error {
			department.Name = in.Name
			department.Description = in.Description
			return tx.Departments().Update(ctx, department)
		},
	})
	if err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes a department together with its courses and faculty profiles
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	err := s.remove(ctx, kindDepartment, id, func(ctx context.Context, tx repositories.Store) error {
		return tx.Departments().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int64("departmentID", id).Msg("Department deleted with its courses and faculty profiles")
	return nil
}
