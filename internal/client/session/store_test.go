package session

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/outreach-console/internal/client/repositories"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, *repositories.Repositories) {
	t.Helper()
	repos, err := repositories.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewSQLiteStore(repos.DB), repos
}

func TestSQLiteStore_SetGetClear(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "abc"))
	tok, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", tok)

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStore_SaveWritesBothKeys(t *testing.T) {
	s, repos := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", "ops@example.com"))

	all, err := repos.Metadata.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), all[common.AccessTokenKey])
	require.Equal(t, []byte("ops@example.com"), all[common.OperatorEmailKey])

	op, ok, err := s.Operator(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ops@example.com", op)

	// a later login without an email must not keep the previous operator
	require.NoError(t, s.Save(ctx, "def", ""))
	_, ok, err = s.Operator(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	dsn := t.TempDir() + "/state/console.db"
	ctx := context.Background()

	repos, err := repositories.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(repos.DB).Set(ctx, "persisted"))
	require.NoError(t, repos.Close())

	repos, err = repositories.InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	tok, ok, err := NewSQLiteStore(repos.DB).Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "persisted", tok)
}

func TestSQLiteStore_ClosedDB(t *testing.T) {
	s, repos := newSQLiteStore(t)
	require.NoError(t, repos.DB.Close())

	_, _, err := s.Get(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, s.Clear(context.Background()), "begin tx")
}

func TestMemoryStore_ConcurrentReads(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, "tok", "ops@example.com"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, ok, err := m.Get(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "tok", tok)
		}()
	}
	wg.Wait()

	require.NoError(t, m.Clear(ctx))
	_, ok, _ := m.Get(ctx)
	require.False(t, ok)
	_, ok, _ = m.Operator(ctx)
	require.False(t, ok)
}
