package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
)

func newRole(name string) *entities.Role {
	now := time.Now()
	return &entities.Role{
		ID:          uuid.New(),
		Name:        name,
		Description: "test role",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRoleRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createRoleTable(t, db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	role := newRole("auditor")
	require.NoError(t, repo.Create(ctx, role))

	byID, err := repo.GetByID(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "auditor", byID.Name)

	byName, err := repo.GetByName(ctx, "auditor")
	require.NoError(t, err)
	assert.Equal(t, role.ID, byName.ID)
}

func TestRoleRepository_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	createRoleTable(t, db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRole("auditor")))
	assert.ErrorIs(t, repo.Create(ctx, newRole("auditor")), domainerrors.ErrAlreadyExists)
}

func TestRoleRepository_GetMisses(t *testing.T) {
	db := newTestDB(t)
	createRoleTable(t, db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRoleRepository_List(t *testing.T) {
	db := newTestDB(t)
	createRoleTable(t, db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRole("zeta")))
	require.NoError(t, repo.Create(ctx, newRole("alpha")))

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "alpha", roles[0].Name)
	assert.Equal(t, "zeta", roles[1].Name)
}

func TestRoleRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	createRoleTable(t, db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	role := newRole("temp")
	require.NoError(t, repo.Create(ctx, role))
	require.NoError(t, repo.Delete(ctx, role.ID))

	_, err := repo.GetByID(ctx, role.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, role.ID), domainerrors.ErrNotFound)
}
