package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func TestSearchFaculty_NameOrBio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hit1 := f.faculty(t, f.user(t, "u1", "FACULTY"), "Ann", "Smith", "Works on BIOinformatics", nil)
	hit2 := f.faculty(t, f.user(t, "u2", "FACULTY"), "Bion", "Jones", "Theory", nil)
	hit3 := f.faculty(t, f.user(t, "u3", "FACULTY"), "Carl", "Biondi", "", nil)
	f.faculty(t, f.user(t, "u4", "FACULTY"), "Dana", "White", "Topology", nil)

	found, err := f.svc.Faculty.Search(ctx, "bio")
	require.NoError(t, err)
	ids := make([]int64, 0, len(found))
	for _, p := range found {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []int64{hit1.ID, hit2.ID, hit3.ID}, ids)
}

func TestCreateFaculty_References(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Faculty.Create(ctx, FacultyInput{UserID: 404, FirstName: "No", LastName: "Body"})
	require.ErrorIs(t, err, apperrors.ErrReferenceNotFound)
	kind, _ := apperrors.Detail(err, "kind")
	assert.Equal(t, "User", kind)

	u := f.user(t, "turing", "FACULTY")
	_, err = f.svc.Faculty.Create(ctx, FacultyInput{UserID: u.ID, FirstName: "Alan", LastName: "Turing", DepartmentID: ptr(int64(404))})
	require.ErrorIs(t, err, apperrors.ErrReferenceNotFound)

	profiles, err := f.svc.Faculty.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestCreateFaculty_OneProfilePerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "noether", "FACULTY")
	p := f.faculty(t, u, "Emmy", "Noether", "", nil)

	_, err := f.svc.Faculty.Create(ctx, FacultyInput{UserID: u.ID, FirstName: "Emmy", LastName: "Again"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	updated, err := f.svc.Faculty.Update(ctx, p.ID, FacultyInput{UserID: u.ID, FirstName: "Amalie", LastName: "Noether"})
	require.NoError(t, err)
	assert.Equal(t, "Amalie", updated.FirstName)
	require.NotNil(t, updated.User)
	assert.Equal(t, "noether", updated.User.Username)

	byUser, err := f.svc.Faculty.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byUser.ID)
}

func TestDeleteFaculty_CascadesToPublications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.faculty(t, f.user(t, "shannon", "FACULTY"), "Claude", "Shannon", "", nil)

	pub, err := f.svc.Publications.Create(ctx, PublicationInput{FacultyID: &p.ID, Title: "A Mathematical Theory of Communication", PublicationDate: date(t, "1948-07-01")})
	require.NoError(t, err)

	require.NoError(t, f.svc.Faculty.Delete(ctx, p.ID))
	_, err = f.svc.Publications.GetByID(ctx, pub.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
