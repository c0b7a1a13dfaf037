package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func TestUpdateDepartment_OwnNameIsNotAConflict(t *testing.T) {
	f := newFixture(t)
	d := f.department(t, "Physics")

	updated, err := f.svc.Departments.Update(context.Background(), d.ID, DepartmentInput{Name: "Physics", Description: "Stars"})
	require.NoError(t, err)
	assert.Equal(t, "Stars", updated.Description)
}

func TestUpdateDepartment_OtherNameConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.department(t, "Physics")
	math := f.department(t, "Mathematics")

	_, err := f.svc.Departments.Update(ctx, math.ID, DepartmentInput{Name: "Physics"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	got, err := f.svc.Departments.GetByID(ctx, math.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", got.Name)
}

func TestUpdateDepartment_MissingIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Departments.Update(context.Background(), 77, DepartmentInput{Name: "Nowhere"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateDepartment_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	errs := make([]error, writers)
	start := make(chan struct{})
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, errs[i] = f.svc.Departments.Create(ctx, DepartmentInput{Name: "Linguistics"})
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	}
	assert.Equal(t, 1, succeeded)

	departments, err := f.svc.Departments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 1)
}

func TestDeleteDepartment_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bio := f.department(t, "Biology")
	chem := f.department(t, "Chemistry")

	f.course(t, "BIO101", &bio.ID)
	kept := f.course(t, "CHM101", &chem.ID)
	f.faculty(t, f.user(t, "mendel", "FACULTY"), "Gregor", "Mendel", "", &bio.ID)
	curie := f.faculty(t, f.user(t, "curie", "FACULTY"), "Marie", "Curie", "", &chem.ID)

	require.NoError(t, f.svc.Departments.Delete(ctx, bio.ID))

	courses, err := f.svc.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, kept.ID, courses[0].ID)

	profiles, err := f.svc.Faculty.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, curie.ID, profiles[0].ID)

	_, err = f.svc.Departments.GetByID(ctx, bio.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, f.svc.Departments.Delete(ctx, bio.ID), apperrors.ErrNotFound)
}

func TestCreateDepartment_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Departments.Create(context.Background(), DepartmentInput{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
