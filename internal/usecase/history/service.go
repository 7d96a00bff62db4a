package history

import (
	"context"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
)

// Service exposes the saved debrief archive: list, fetch one, delete.
type Service struct {
	repo repositories.HistoryRepository
}

// NewService creates a new history service
func NewService(repo repositories.HistoryRepository) *Service {
	return &Service{repo: repo}
}

// List returns all records, newest first
func (s *Service) List(ctx context.Context) ([]entities.HistoryRecord, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.ErrHistoryStoreFailed(err)
	}
	return records, nil
}

// Get returns one record by id
func (s *Service) Get(ctx context.Context, id string) (*entities.HistoryRecord, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, apperrors.ErrHistoryStoreFailed(err)
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.ErrNotFound("history record")
}

// Delete removes one record; deleting an absent id is a no-op. The
// resulting list is returned for the client to rerender.
func (s *Service) Delete(ctx context.Context, id string) ([]entities.HistoryRecord, error) {
	records, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.ErrHistoryStoreFailed(err)
	}
	return records, nil
}
