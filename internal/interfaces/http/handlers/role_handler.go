package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
)

type RoleService interface {
	Create(ctx context.Context, input *entities.CreateRoleInput) (*entities.Role, error)
	List(ctx context.Context) ([]*entities.Role, error)
	Delete(ctx context.Context, roleID uuid.UUID) error
}

// RoleHandler handles role management endpoints
type RoleHandler struct {
	roleUsecase RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleUsecase RoleService) *RoleHandler {
	return &RoleHandler{roleUsecase: roleUsecase}
}

// Create creates a role
// POST /api/v1/admin/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var input entities.CreateRoleInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	role, err := h.roleUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, role)
}

// List lists all roles
// GET /api/v1/admin/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

// Delete deletes a role without assigned users
// DELETE /api/v1/admin/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid role ID"))
		return
	}

	if err := h.roleUsecase.Delete(c.Request.Context(), roleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "role deleted",
	})
}
