package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/app/repositories/memstore"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func failingWrite(err error) mutation {
	return mutation{
		kind: kindPublication,
		apply: func(context.Context, repositories.Store) error {
			return err
		},
	}
}

func TestRun_TranslatesStoreErrors(t *testing.T) {
	g := integrity{store: memstore.NewWithRoles()}
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"value too long", &pgconn.PgError{Code: "22001", ColumnName: "title"}, apperrors.ErrValidationFailed},
		{"numeric out of range", &pgconn.PgError{Code: "22003"}, apperrors.ErrValidationFailed},
		{"unique at commit", &pgconn.PgError{Code: "23505", ConstraintName: repositories.ConstraintCourseCode}, apperrors.ErrDuplicateKey},
		{"reference vanished", &pgconn.PgError{Code: "23503", ConstraintName: repositories.ConstraintPublicationFaculty}, apperrors.ErrReferenceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.run(ctx, failingWrite(tt.err))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	var ce *apperrors.CustomError
	err := g.run(ctx, failingWrite(&pgconn.PgError{Code: "22001", ColumnName: "title"}))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "title", ce.Details["column"])

	err = g.run(ctx, failingWrite(errors.New("connection reset")))
	assert.False(t, apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrDuplicateKey))
}
