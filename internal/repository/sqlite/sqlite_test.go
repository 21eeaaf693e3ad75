package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodework/internal/repository"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// fixedClock makes updated_at deterministic; each call advances one second
func fixedClock(repo *Repository) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "nodework", []byte(`{"version":1}`)))

	data, err := repo.Load(ctx, "nodework")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "k", []byte("first")))
	require.NoError(t, repo.Save(ctx, "k", []byte("second")))

	data, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("never saved", func(t *testing.T) {
		_, err := repo.Load(ctx, "nothing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("empty document", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "blank", nil))
		_, err := repo.Load(ctx, "blank")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSaveRequiresKey(t *testing.T) {
	repo := newTestRepo(t)
	assert.Error(t, repo.Save(context.Background(), "", []byte("x")))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "k", []byte("x")))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Load(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	fixedClock(repo)

	require.NoError(t, repo.Save(ctx, "a", []byte("1")))
	require.NoError(t, repo.Save(ctx, "b", []byte("22")))
	require.NoError(t, repo.Save(ctx, "a", []byte("333")))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, 3, entries[0].Size)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 3, 0, time.UTC), entries[0].UpdatedAt)
	assert.Equal(t, "b", entries[1].Key)
	assert.Equal(t, 2, entries[1].Size)
}

func TestListEmpty(t *testing.T) {
	entries, err := newTestRepo(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nodework.db")

	repo, err := New(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "k", []byte("kept")))
	require.NoError(t, repo.Close())

	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	data, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:", dsn(":memory:"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn("file:a.db?mode=rwc"))
}
