package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// HistoryFileRepository keeps the saved debrief sessions as one JSON array
// on disk, newest first, capped at entities.HistoryLimit. A missing or
// corrupt file reads as an empty history.
type HistoryFileRepository struct {
	path string
}

// NewHistoryFileRepository creates a file-backed history repository
func NewHistoryFileRepository(path string) *HistoryFileRepository {
	return &HistoryFileRepository{path: path}
}

// Load returns all records, newest first. Never returns an error for a
// missing or unreadable store.
func (r *HistoryFileRepository) Load(ctx context.Context) ([]entities.HistoryRecord, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return []entities.HistoryRecord{}, nil
	}

	var records []entities.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return []entities.HistoryRecord{}, nil
	}
	return records, nil
}

// Save persists the given sequence, truncated to the newest HistoryLimit
// entries (strict insertion-order truncation, tail dropped).
func (r *HistoryFileRepository) Save(ctx context.Context, records []entities.HistoryRecord) error {
	if len(records) > entities.HistoryLimit {
		records = records[:entities.HistoryLimit]
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Delete removes the record with the given id and returns the resulting
// sequence. Deleting an absent id is a no-op.
func (r *HistoryFileRepository) Delete(ctx context.Context, id string) ([]entities.HistoryRecord, error) {
	records, _ := r.Load(ctx)

	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return records, nil
	}

	if err := r.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
