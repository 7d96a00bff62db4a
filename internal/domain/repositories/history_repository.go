package repositories

import (
	"context"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// HistoryRepository persists saved debrief sessions, newest first, capped at
// entities.HistoryLimit.
type HistoryRepository interface {
	// Load returns all records; a missing or corrupt store yields an empty
	// slice, never an error.
	Load(ctx context.Context) ([]entities.HistoryRecord, error)
	// Save persists the full sequence, truncated to the newest HistoryLimit
	// records.
	Save(ctx context.Context, records []entities.HistoryRecord) error
	// Delete removes one record by id; deleting an absent id is a no-op.
	// Returns the resulting sequence.
	Delete(ctx context.Context, id string) ([]entities.HistoryRecord, error)
}

// WordRepository persists the speech-recognition custom word registry.
type WordRepository interface {
	Load(ctx context.Context) ([]entities.CustomWord, error)
	Save(ctx context.Context, words []entities.CustomWord) error
}
