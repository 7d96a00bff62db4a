package words

import (
	"context"
	"strings"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
)

// Service manages the speech-recognition custom word registry: readings
// that the recognizer gets wrong, mapped to their canonical spelling.
type Service struct {
	repo repositories.WordRepository
}

// NewService creates a new word registry service
func NewService(repo repositories.WordRepository) *Service {
	return &Service{repo: repo}
}

// List returns all registered words
func (s *Service) List(ctx context.Context) ([]entities.CustomWord, error) {
	words, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return words, nil
}

// Add registers a reading-to-word mapping. Duplicate readings are rejected.
func (s *Service) Add(ctx context.Context, reading, word string) ([]entities.CustomWord, error) {
	reading = strings.TrimSpace(reading)
	word = strings.TrimSpace(word)
	if reading == "" || word == "" {
		return nil, apperrors.ErrInvalidArgument("reading and word are required")
	}

	words, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	for _, w := range words {
		if w.Reading == reading {
			return nil, apperrors.ErrAlreadyExists("reading")
		}
	}

	words = append(words, entities.CustomWord{Reading: reading, Word: word})
	if err := s.repo.Save(ctx, words); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return words, nil
}

// Remove deletes the mapping for a reading; removing an unknown reading is
// a no-op.
func (s *Service) Remove(ctx context.Context, reading string) ([]entities.CustomWord, error) {
	words, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	kept := make([]entities.CustomWord, 0, len(words))
	for _, w := range words {
		if w.Reading != reading {
			kept = append(kept, w)
		}
	}

	if len(kept) != len(words) {
		if err := s.repo.Save(ctx, kept); err != nil {
			return nil, apperrors.ErrInternal(err)
		}
	}
	return kept, nil
}
