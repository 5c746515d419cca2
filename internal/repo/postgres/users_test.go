package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/repo/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUsersRepo(t *testing.T) *postgres.UsersRepo {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := postgres.NewUsersRepo(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = pool.Exec(ctx, `TRUNCATE user_documents`)
	require.NoError(t, err)

	return repo
}

func TestUsersRepo_InvalidIDNeverHitsTheDatabase(t *testing.T) {
	// a nil pool would panic if any of these reached a query
	repo := postgres.NewUsersRepo(nil)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "42")
	assert.ErrorIs(t, err, user.ErrInvalidID)

	_, err = repo.FindAndUpdate(ctx, "42", map[string]string{"name": "X"})
	assert.ErrorIs(t, err, user.ErrInvalidID)

	_, err = repo.DeleteByID(ctx, "42")
	assert.ErrorIs(t, err, user.ErrInvalidID)
}

func TestUsersRepo_Postgres_Lifecycle(t *testing.T) {
	repo := setupUsersRepo(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := repo.Insert(ctx, user.Document{Name: "Ada", Email: "ada@example.com", Password: "digest"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	prior, err := repo.FindAndUpdate(ctx, created.ID, map[string]string{"name": "X"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", prior.Name)

	got, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)

	n, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = repo.FindAndUpdate(ctx, uuid.NewString(), map[string]string{"name": "Y"})
	assert.ErrorIs(t, err, user.ErrNotFound)
}
