package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestPublications_ByFacultyNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.faculty(t, f.user(t, "dijkstra", "FACULTY"), "Edsger", "Dijkstra", "", nil)

	for _, d := range []string{"1968-03-01", "1972-01-01", "1959-12-01"} {
		_, err := f.svc.Publications.Create(ctx, PublicationInput{FacultyID: &p.ID, Title: d, PublicationDate: date(t, d)})
		require.NoError(t, err)
	}

	pubs, err := f.svc.Publications.ListByFaculty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, pubs, 3)
	assert.Equal(t, []string{"1972-01-01", "1968-03-01", "1959-12-01"}, []string{pubs[0].Title, pubs[1].Title, pubs[2].Title})

	n, err := f.svc.Publications.CountByFaculty(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestCreatePublication_RequiresExistingFaculty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Publications.Create(ctx, PublicationInput{Title: "Orphan", PublicationDate: date(t, "2020-01-01")})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.Publications.Create(ctx, PublicationInput{FacultyID: ptr(int64(5)), Title: "Orphan", PublicationDate: date(t, "2020-01-01")})
	require.ErrorIs(t, err, apperrors.ErrReferenceNotFound)
}

func TestUpdatePublication_NilFacultyKeepsAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.faculty(t, f.user(t, "liskov", "FACULTY"), "Barbara", "Liskov", "", nil)
	pub, err := f.svc.Publications.Create(ctx, PublicationInput{FacultyID: &p.ID, Title: "Draft", PublicationDate: date(t, "1987-10-01")})
	require.NoError(t, err)

	updated, err := f.svc.Publications.Update(ctx, pub.ID, PublicationInput{Title: "Data Abstraction and Hierarchy", PublicationDate: date(t, "1987-10-01"), DOI: "10.1145/62139.62141"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.FacultyID)
	assert.Equal(t, "Data Abstraction and Hierarchy", updated.Title)

	_, err = f.svc.Publications.Update(ctx, 999, PublicationInput{Title: "x", PublicationDate: date(t, "2000-01-01")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchPublications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.faculty(t, f.user(t, "hoare", "FACULTY"), "Tony", "Hoare", "", nil)

	inputs := []PublicationInput{
		{Title: "Quicksort", JournalName: "The Computer Journal"},
		{Title: "Axioms", AbstractText: "An axiomatic basis for COMPUTER programming"},
		{Title: "Monitors", JournalName: "CACM"},
	}
	for _, in := range inputs {
		in.FacultyID = &p.ID
		in.PublicationDate = date(t, "1970-01-01")
		_, err := f.svc.Publications.Create(ctx, in)
		require.NoError(t, err)
	}

	found, err := f.svc.Publications.Search(ctx, "computer")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Quicksort", found[0].Title)
	assert.Equal(t, "Axioms", found[1].Title)
}

func TestCreatePublication_ColumnLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.faculty(t, f.user(t, "knuth", "FACULTY"), "Donald", "Knuth", "", nil)
	valid := func() PublicationInput {
		return PublicationInput{FacultyID: &p.ID, Title: "TAOCP", PublicationDate: date(t, "1968-01-01")}
	}

	long := valid()
	long.Title = strings.Repeat("t", 256)
	_, err := f.svc.Publications.Create(ctx, long)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	long = valid()
	long.JournalName = strings.Repeat("j", 256)
	_, err = f.svc.Publications.Create(ctx, long)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	long = valid()
	long.URL = "https://example.com/" + strings.Repeat("u", 1024)
	_, err = f.svc.Publications.Create(ctx, long)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// multi-byte titles are measured in characters like the VARCHAR column
	fits := valid()
	fits.Title = strings.Repeat("ü", 255)
	_, err = f.svc.Publications.Create(ctx, fits)
	assert.NoError(t, err)
}
