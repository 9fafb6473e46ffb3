package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, Run{
		Dataset:    "nvr",
		Collection: "nvr_streaming_recording",
		Count:      16,
		Status:     "ok",
		Duration:   1200 * time.Millisecond,
	}))
	require.NoError(t, store.RecordRun(ctx, Run{
		Dataset:    "company",
		Collection: "variphi",
		Count:      12,
		Status:     "warning",
		Warning:    "probe query failed",
		Duration:   900 * time.Millisecond,
	}))

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "company", runs[0].Dataset, "newest first")
	assert.Equal(t, 12, runs[0].Count)
	assert.Equal(t, "probe query failed", runs[0].Warning)
	assert.Equal(t, 900*time.Millisecond, runs[0].Duration)

	assert.Equal(t, "nvr", runs[1].Dataset)
	assert.Equal(t, "ok", runs[1].Status)
	assert.False(t, runs[1].At.IsZero())
}

func TestRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordRun(ctx, Run{
			Dataset:    "nvr",
			Collection: "nvr_streaming_recording",
			Count:      16,
			Status:     "ok",
		}))
	}

	runs, err := store.RecentRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())
}
