package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/db"
)

type publicationRepository struct {
	q db.DBTX
}

func (r *publicationRepository) selectPublications() squirrel.SelectBuilder {
	return psql.Select(
		"p.id", "p.faculty_id", "p.title", "p.publication_date", "p.journal_name", "p.url",
		"p.abstract_text", "p.doi", "p.created_at", "p.updated_at",
		"f.user_id", "f.first_name", "f.last_name",
	).From("publications p").Join("faculty_profiles f ON f.id = p.faculty_id")
}

func scanPublication(row pgx.Row) (*models.Publication, error) {
	var p models.Publication
	var published time.Time
	var author models.FacultyProfile
	err := row.Scan(
		&p.ID, &p.FacultyID, &p.Title, &published, &p.JournalName, &p.URL,
		&p.AbstractText, &p.DOI, &p.CreatedAt, &p.UpdatedAt,
		&author.UserID, &author.FirstName, &author.LastName,
	)
	if err != nil {
		return nil, err
	}
	p.PublicationDate = models.NewDate(published)
	author.ID = p.FacultyID
	p.Faculty = &author
	return &p, nil
}

func (r *publicationRepository) Create(ctx context.Context, p *models.Publication) error {
	now := time.Now().UTC()
	row, err := queryRow(ctx, r.q, psql.Insert("publications").
		Columns("faculty_id", "title", "publication_date", "journal_name", "url", "abstract_text", "doi",
			"created_at", "updated_at").
		Values(p.FacultyID, p.Title, p.PublicationDate.Time, p.JournalName, p.URL, p.AbstractText, p.DOI,
			now, now).
		Suffix("RETURNING id, created_at, updated_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("error creating publication: %w", err)
	}
	return nil
}

func (r *publicationRepository) Update(ctx context.Context, p *models.Publication) error {
	row, err := queryRow(ctx, r.q, psql.Update("publications").
		Set("faculty_id", p.FacultyID).
		Set("title", p.Title).
		Set("publication_date", p.PublicationDate.Time).
		Set("journal_name", p.JournalName).
		Set("url", p.URL).
		Set("abstract_text", p.AbstractText).
		Set("doi", p.DOI).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at"))
	if err != nil {
		return err
	}
	return noRows(row.Scan(&p.UpdatedAt))
}

func (r *publicationRepository) Delete(ctx context.Context, id int64) error {
	return affected(exec(ctx, r.q, psql.Delete("publications").Where(squirrel.Eq{"id": id})))
}

func (r *publicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	row, err := queryRow(ctx, r.q, r.selectPublications().Where(squirrel.Eq{"p.id": id}).Limit(1))
	if err != nil {
		return nil, err
	}
	p, err := scanPublication(row)
	if err != nil {
		return nil, noRows(err)
	}
	return p, nil
}

func (r *publicationRepository) List(ctx context.Context) ([]*models.Publication, error) {
	return queryAll(ctx, r.q, r.selectPublications().OrderBy("p.id"), scanPublication)
}

// ListByFaculty returns a faculty member's publications, newest first
func (r *publicationRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Publication, error) {
	return queryAll(ctx, r.q, r.selectPublications().
		Where(squirrel.Eq{"p.faculty_id": facultyID}).
		OrderBy("p.publication_date DESC", "p.id DESC"), scanPublication)
}

func (r *publicationRepository) CountByFaculty(ctx context.Context, facultyID int64) (int64, error) {
	return count(ctx, r.q, psql.Select("COUNT(*)").From("publications").Where(squirrel.Eq{"faculty_id": facultyID}))
}

// Search matches keyword case-insensitively against title, journal name or abstract
func (r *publicationRepository) Search(ctx context.Context, keyword string) ([]*models.Publication, error) {
	return queryAll(ctx, r.q, r.selectPublications().
		Where(anyILike(keyword, "p.title", "p.journal_name", "p.abstract_text")).
		OrderBy("p.id"), scanPublication)
}
