package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"github.com/yigit/unifms/internal/pkg/dberrors"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// lookupFn reports repositories.ErrNotFound when the row does not exist
type lookupFn func(ctx context.Context, tx repositories.Store) error

// reference is a foreign key supplied by a request
type reference struct {
	kind   string
	id     int64
	exists lookupFn
}

// uniqueField is a value that must not belong to any other row. owner returns the id of
// the row currently holding the value, or repositories.ErrNotFound.
type uniqueField struct {
	field string
	value interface{}
	owner func(ctx context.Context, tx repositories.Store) (int64, error)
}

// mutation describes one integrity-checked write. Every step runs in one transaction:
// target is resolved (NotFound), then refs (ReferenceNotFound), then unique fields
// (DuplicateKey, a row matching itself is not a conflict), then apply.
type mutation struct {
	kind     string
	targetID interface{}
	selfID   int64
	target   lookupFn
	refs     []reference
	unique   []uniqueField
	apply    func(ctx context.Context, tx repositories.Store) error
}

// integrity runs mutations against a store
type integrity struct {
	store repositories.Store
}

func (g integrity) run(ctx context.Context, m mutation) error {
	err := g.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if m.target != nil {
			if err := m.target(ctx, tx); err != nil {
				return err
			}
		}

		for _, ref := range m.refs {
			if err := ref.exists(ctx, tx); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return apperrors.NewReferenceNotFoundError(ref.kind, ref.id)
				}
				return fmt.Errorf("failed to resolve %s %d: %w", ref.kind, ref.id, err)
			}
		}

		for _, u := range m.unique {
			ownerID, err := u.owner(ctx, tx)
			switch {
			case errors.Is(err, repositories.ErrNotFound):
			case err != nil:
				return fmt.Errorf("failed to check %s uniqueness: %w", u.field, err)
			case m.selfID == 0 || ownerID != m.selfID:
				return apperrors.NewDuplicateKeyError(u.field, u.value)
			}
		}

		return m.apply(ctx, tx)
	})
	if err == nil {
		return nil
	}
	return m.translate(ctx, err)
}

// translate maps store errors that escaped the pre-checks. Concurrent writers are only
// caught here, when the constraint fires at insert or commit time.
func (m mutation) translate(ctx context.Context, err error) error {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return err
	}

	if constraint, ok := dberrors.UniqueViolationConstraint(err); ok {
		field := repositories.UniqueFields[constraint]
		var value interface{}
		for _, u := range m.unique {
			if u.field == field {
				value = u.value
			}
		}
		logger.Ctx(ctx).Info().Str("constraint", constraint).Str("kind", m.kind).Msg("Unique constraint rejected write")
		return apperrors.NewDuplicateKeyError(field, value)
	}

	if constraint, ok := dberrors.IsForeignKeyViolation(err); ok {
		kind := repositories.ReferenceKinds[constraint]
		var id int64
		for _, ref := range m.refs {
			if ref.kind == kind {
				id = ref.id
			}
		}
		return apperrors.NewReferenceNotFoundError(kind, id)
	}

	if column, ok := dberrors.DataException(err); ok {
		logger.Ctx(ctx).Warn().Err(err).Str("kind", m.kind).Msg("Value rejected by column type")
		verr := apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("invalid value for %s", m.kind)).
			WithCode(apperrors.CodeValidationFailed)
		if column != "" {
			verr.WithDetails(map[string]interface{}{"column": column})
		}
		return verr
	}

	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewNotFoundError(m.kind, m.targetID)
	}

	return fmt.Errorf("failed to write %s: %w", m.kind, err)
}

// remove deletes one row by id. Cascades are the repository's business.
func (g integrity) remove(ctx context.Context, kind string, id int64, del func(ctx context.Context, tx repositories.Store) error) error {
	return g.run(ctx, mutation{
		kind:     kind,
		targetID: id,
		selfID:   id,
		apply:    del,
	})
}

// notFound converts a repository miss on a read into the API error for kind
func notFound(err error, kind string, id interface{}) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewNotFoundError(kind, id)
	}
	return err
}

func optionalRef(kind string, id *int64, exists func(ctx context.Context, tx repositories.Store, id int64) error) []reference {
	if id == nil {
		return nil
	}
	v := *id
	return []reference{{kind: kind, id: v, exists: func(ctx context.Context, tx repositories.Store) error {
		return exists(ctx, tx, v)
	}}}
}

func requiredRef(kind string, id int64, exists func(ctx context.Context, tx repositories.Store, id int64) error) reference {
	return reference{kind: kind, id: id, exists: func(ctx context.Context, tx repositories.Store) error {
		return exists(ctx, tx, id)
	}}
}

func userExists(ctx context.Context, tx repositories.Store, id int64) error {
	_, err := tx.Users().GetByID(ctx, id)
	return err
}

func departmentExists(ctx context.Context, tx repositories.Store, id int64) error {
	_, err := tx.Departments().GetByID(ctx, id)
	return err
}

func courseExists(ctx context.Context, tx repositories.Store, id int64) error {
	_, err := tx.Courses().GetByID(ctx, id)
	return err
}

func facultyExists(ctx context.Context, tx repositories.Store, id int64) error {
	_, err := tx.Faculty().GetByID(ctx, id)
	return err
}

// ownerOf adapts a by-value lookup to uniqueField.owner
func ownerOf[T any](get func(ctx context.Context, tx repositories.Store) (T, error), id func(T) int64) func(ctx context.Context, tx repositories.Store) (int64, error) {
	return func(ctx context.Context, tx repositories.Store) (int64, error) {
		row, err := get(ctx, tx)
		if err != nil {
			return 0, err
		}
		return id(row), nil
	}
}
