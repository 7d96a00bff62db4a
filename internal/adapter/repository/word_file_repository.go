package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// WordFileRepository persists the custom word registry as one JSON array.
type WordFileRepository struct {
	path string
}

// NewWordFileRepository creates a file-backed word repository
func NewWordFileRepository(path string) *WordFileRepository {
	return &WordFileRepository{path: path}
}

// Load returns the registered words; missing or corrupt store reads empty.
func (r *WordFileRepository) Load(ctx context.Context) ([]entities.CustomWord, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return []entities.CustomWord{}, nil
	}
	var words []entities.CustomWord
	if err := json.Unmarshal(raw, &words); err != nil {
		return []entities.CustomWord{}, nil
	}
	return words, nil
}

// Save persists the full registry.
func (r *WordFileRepository) Save(ctx context.Context, words []entities.CustomWord) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	raw, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode words: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write words file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace words file: %w", err)
	}
	return nil
}
