package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/infrastructure/models"
)

// RoleRepository implements role data operations
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *entities.Role) error {
	m := &models.Role{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	role.ID = m.ID
	return nil
}

// GetByID gets a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Role, error) {
	var m models.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toRoleEntity(&m), nil
}

// GetByName gets a role by its unique name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entities.Role, error) {
	var m models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toRoleEntity(&m), nil
}

// List lists all roles
func (r *RoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	var ms []models.Role
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	roles := make([]*entities.Role, 0, len(ms))
	for _, m := range ms {
		model := m
		roles = append(roles, toRoleEntity(&model))
	}
	return roles, nil
}

// Delete soft deletes a role
func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Role{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toRoleEntity(m *models.Role) *entities.Role {
	return &entities.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
