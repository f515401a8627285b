package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
)

func TestRoleHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &roleServiceStub{
		createFn: func(_ context.Context, input *entities.CreateRoleInput) (*entities.Role, error) {
			if input.Name == "admin" {
				return nil, domainerrors.Conflict("a role with this name already exists")
			}
			return &entities.Role{ID: uuid.New(), Name: input.Name, Description: input.Description}, nil
		},
	}
	h := NewRoleHandler(svc)

	r := gin.New()
	r.POST("/admin/roles", h.Create)

	w := performJSON(t, r, http.MethodPost, "/admin/roles",
		`{"name": "auditor", "description": "Read-only oversight"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"name":"auditor"`)

	w = performJSON(t, r, http.MethodPost, "/admin/roles", `{"name": "admin"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(t, r, http.MethodPost, "/admin/roles", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &roleServiceStub{
		listFn: func(context.Context) ([]*entities.Role, error) {
			return []*entities.Role{
				{ID: uuid.New(), Name: entities.RoleAdmin},
				{ID: uuid.New(), Name: entities.RoleUser},
			}, nil
		},
	}
	h := NewRoleHandler(svc)

	r := gin.New()
	r.GET("/admin/roles", h.List)

	w := performJSON(t, r, http.MethodGet, "/admin/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"roles":[`)
}

func TestRoleHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	roleID := uuid.New()
	svc := &roleServiceStub{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != roleID {
				return domainerrors.NotFound("role not found")
			}
			return nil
		},
	}
	h := NewRoleHandler(svc)

	r := gin.New()
	r.DELETE("/admin/roles/:id", h.Delete)

	w := performJSON(t, r, http.MethodDelete, "/admin/roles/"+roleID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "role deleted")

	w = performJSON(t, r, http.MethodDelete, "/admin/roles/"+uuid.New().String(), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(t, r, http.MethodDelete, "/admin/roles/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
