package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
