package repositories

import (
	"context"

	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
)

// RoleRepository defines role data operations
type RoleRepository interface {
	Create(ctx context.Context, role *entities.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error)
	GetByName(ctx context.Context, name string) (*entities.Role, error)
	List(ctx context.Context) ([]*entities.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
