package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

func newHistoryRepo(t *testing.T) *HistoryFileRepository {
	t.Helper()
	return NewHistoryFileRepository(filepath.Join(t.TempDir(), "history.json"))
}

func makeRecords(n int) []entities.HistoryRecord {
	records := make([]entities.HistoryRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, entities.HistoryRecord{
			ID:           fmt.Sprintf("rec-%d", i),
			SavedAt:      time.Now(),
			CustomerName: "ABC商事",
			Date:         "2026/9/1",
		})
	}
	return records
}

func TestHistoryLoad_MissingFile(t *testing.T) {
	repo := newHistoryRepo(t)

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestHistoryLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewHistoryFileRepository(path)
	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestHistorySave_TruncatesToLimit(t *testing.T) {
	repo := newHistoryRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeRecords(entities.HistoryLimit+17)))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, entities.HistoryLimit)
	// Newest-first order preserved, tail beyond the limit dropped
	require.Equal(t, "rec-0", records[0].ID)
	require.Equal(t, fmt.Sprintf("rec-%d", entities.HistoryLimit-1), records[len(records)-1].ID)
}

func TestHistoryDelete_RemovesRecord(t *testing.T) {
	repo := newHistoryRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeRecords(3)))

	remaining, err := repo.Delete(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	require.Equal(t, "rec-0", remaining[0].ID)
	require.Equal(t, "rec-2", remaining[1].ID)

	// Deletion is persisted
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
}

func TestHistoryDelete_AbsentIDIsNoOp(t *testing.T) {
	repo := newHistoryRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeRecords(3)))

	remaining, err := repo.Delete(ctx, "does-not-exist")
	require.NoError(t, err)
	require.Len(t, remaining, 3)
}
