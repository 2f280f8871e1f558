package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monstermash2008/time-range/internal/domain"
)

func openTemp(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "hours.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	_, err := repo.Get(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)

	wh := &domain.WorkHours{ChatID: 42, Range: domain.NewRange(domain.Time{Hour: 9, Minute: 30}, domain.Time{Hour: 23, Minute: 59})}
	require.NoError(t, repo.Upsert(ctx, wh))
	assert.False(t, wh.CreatedAt.IsZero())

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, wh.Range, got.Range)
	assert.Equal(t, wh.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestSQLiteRepo_NullEndpoints(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	midnight := domain.Time{}
	require.NoError(t, repo.Upsert(ctx, &domain.WorkHours{ChatID: 1, Range: domain.Range{To: &midnight}}))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got.Range.From)
	require.NotNil(t, got.Range.To)
	assert.Equal(t, midnight, *got.Range.To)

	require.NoError(t, repo.Upsert(ctx, &domain.WorkHours{ChatID: 1}))
	got, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Range{}, got.Range)
}

func TestSQLiteRepo_RejectsOutOfRange(t *testing.T) {
	repo := openTemp(t)
	err := repo.Upsert(context.Background(), &domain.WorkHours{
		ChatID: 1,
		Range:  domain.NewRange(domain.Time{Hour: 12}, domain.Time{Hour: 24}),
	})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestSQLiteRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	require.NoError(t, repo.Upsert(ctx, &domain.WorkHours{ChatID: 7, Range: domain.DefaultRange()}))
	require.NoError(t, repo.Delete(ctx, 7))
	_, err := repo.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, 7))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTemp(t)

	require.NoError(t, RunMigrations(ctx, repo.db))

	var n int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}
