package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/pkg/utils"
)

// RoleUsecase manages the role catalog
type RoleUsecase struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

// NewRoleUsecase creates a new role usecase
func NewRoleUsecase(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) *RoleUsecase {
	return &RoleUsecase{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

// Create adds a role. Role names are unique.
func (u *RoleUsecase) Create(ctx context.Context, input *entities.CreateRoleInput) (*entities.Role, error) {
	if _, err := u.roleRepo.GetByName(ctx, input.Name); err == nil {
		return nil, domainerrors.Conflict("a role with this name already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	role := &entities.Role{
		ID:          utils.GenerateUUIDv7(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.roleRepo.Create(ctx, role); err != nil {
		// The pre-check can lose a race; the unique index is the backstop.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a role with this name already exists")
		}
		return nil, err
	}
	return role, nil
}

// EnsureBuiltins creates the built-in roles when missing so a fresh
// database can authorize admins, loan officers and users immediately.
// Existing roles are left untouched.
func (u *RoleUsecase) EnsureBuiltins(ctx context.Context) error {
	builtins := []struct {
		name        string
		description string
	}{
		{entities.RoleAdmin, "full administrative access"},
		{entities.RoleLoanOfficer, "reviews loan applications and manages transitions"},
		{entities.RoleUser, "borrower account"},
	}

	for _, b := range builtins {
		_, err := u.roleRepo.GetByName(ctx, b.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		now := time.Now()
		role := &entities.Role{
			ID:          utils.GenerateUUIDv7(),
			Name:        b.name,
			Description: b.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := u.roleRepo.Create(ctx, role); err != nil {
			// A concurrent boot may have won the race for this name.
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

// List lists all roles
func (u *RoleUsecase) List(ctx context.Context) ([]*entities.Role, error) {
	return u.roleRepo.List(ctx)
}

// Delete removes a role. A role with users still assigned cannot be
// deleted; reassign them first.
func (u *RoleUsecase) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := u.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("role not found")
		}
		return err
	}

	assigned, err := u.userRepo.CountByRole(ctx, role.Name)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domainerrors.Conflict("role has users assigned and cannot be deleted")
	}

	return u.roleRepo.Delete(ctx, roleID)
}
