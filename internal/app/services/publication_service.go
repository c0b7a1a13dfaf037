package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

const kindPublication = "Publication"

// PublicationInput carries the writable publication fields. FacultyID is required on
// create and keeps the current author when nil on update.
type PublicationInput struct {
	FacultyID       *int64
	Title           string
	PublicationDate models.Date
	JournalName     string
	URL             string
	AbstractText    string
	DOI             string
}

func (in *PublicationInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.DOI = strings.TrimSpace(in.DOI)
	switch {
	case in.Title == "":
		return apperrors.NewValidationError("title cannot be empty")
	case utf8.RuneCountInString(in.Title) > 255:
		return apperrors.NewValidationError("title must be at most 255 characters")
	case in.PublicationDate.IsZero():
		return apperrors.NewValidationError("publicationDate is required")
	case utf8.RuneCountInString(in.JournalName) > 255:
		return apperrors.NewValidationError("journalName must be at most 255 characters")
	case utf8.RuneCountInString(in.URL) > 1024:
		return apperrors.NewValidationError("url must be at most 1024 characters")
	case len(in.DOI) > 100:
		return apperrors.NewValidationError("doi must be at most 100 characters")
	}
	return nil
}

// PublicationService handles publication operations
type PublicationService struct {
	store repositories.Store
	integrity
}

// NewPublicationService creates a new PublicationService
func NewPublicationService(store repositories.Store) *PublicationService {
	return &PublicationService{store: store, integrity: integrity{store: store}}
}

func (s *PublicationService) List(ctx context.Context) ([]*models.Publication, error) {
	return s.store.Publications().List(ctx)
}

func (s *PublicationService) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	p, err := s.store.Publications().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, kindPublication, id)
	}
	return p, nil
}

// ListByFaculty returns a faculty member's publications, newest first
func (s *PublicationService) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Publication, error) {
	if _, err := s.store.Faculty().GetByID(ctx, facultyID); err != nil {
		return nil, notFound(err, kindFaculty, facultyID)
	}
	return s.store.Publications().ListByFaculty(ctx, facultyID)
}

func (s *PublicationService) CountByFaculty(ctx context.Context, facultyID int64) (int64, error) {
	if _, err := s.store.Faculty().GetByID(ctx, facultyID); err != nil {
		return 0, notFound(err, kindFaculty, facultyID)
	}
	return s.store.Publications().CountByFaculty(ctx, facultyID)
}

// Search matches title, journal name or abstract case-insensitively
func (s *PublicationService) Search(ctx context.Context, keyword string) ([]*models.Publication, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperrors.NewValidationError("keyword cannot be empty")
	}
	return s.store.Publications().Search(ctx, keyword)
}

func (s *PublicationService) Create(ctx context.Context, in PublicationInput) (*models.Publication, error) {
	if in.FacultyID == nil {
		return nil, apperrors.NewValidationError("facultyId is required")
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	pub := &models.Publication{FacultyID: *in.FacultyID}
	in.apply(pub)
	err := s.run(ctx, mutation{
		kind: kindPublication,
		refs: optionalRef(kindFaculty, in.FacultyID, facultyExists),
		apply: func(ctx context.Context, tx repositories.Store) error {
			if err := tx.Publications().Create(ctx, pub); err != nil {
				return err
			}
			created, err := tx.Publications().GetByID(ctx, pub.ID)
			if err != nil {
				return err
			}
			pub = created
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return pub, nil
}

func (s *PublicationService) Update(ctx context.Context, id int64, in PublicationInput) (*models.Publication, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var pub *models.Publication
	err := s.run(ctx, mutation{
		kind:     kindPublication,
		targetID: id,
		selfID:   id,
		target: func(ctx context.Context, tx repositories.Store) (err error) {
			pub, err = tx.Publications().GetByID(ctx, id)
			return err
		},
		refs: optionalRef(kindFaculty, in.FacultyID, facultyExists),
		apply: func(ctx context.Context, tx repositories.Store) error {
			if in.FacultyID != nil {
				pub.FacultyID = *in.FacultyID
			}
			in.apply(pub)
			if err := tx.Publications().Update(ctx, pub); err != nil {
				return err
			}
			updated, err := tx.Publications().GetByID(ctx, id)
			if err != nil {
				return err
			}
			pub = updated
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return pub, nil
}

func (in PublicationInput) apply(p *models.Publication) {
	p.Title = in.Title
	p.PublicationDate = in.PublicationDate
	p.JournalName = in.JournalName
	p.URL = in.URL
	p.AbstractText = in.AbstractText
	p.DOI = in.DOI
}

func (s *PublicationService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, kindPublication, id, func(ctx context.Context, tx repositories.Store) error {
		return tx.Publications().Delete(ctx, id)
	})
}
