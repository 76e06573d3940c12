package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, map[string][]byte{
		"employees": []byte(`[{"id":"1"}]`),
		"shifts":    []byte(`[]`),
	}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got["employees"]))
	assert.Equal(t, `[]`, string(got["shifts"]))
}

func TestSQLiteStore_SaveOverwritesEntry(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, map[string][]byte{"notes": []byte(`[]`)}))
	require.NoError(t, store.Save(ctx, map[string][]byte{"notes": []byte(`[{"id":"n1"}]`)}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, `[{"id":"n1"}]`, string(got["notes"]))
}
