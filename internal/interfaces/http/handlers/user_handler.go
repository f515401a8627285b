package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/middleware"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
)

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	UpdateSecurity(ctx context.Context, userID uuid.UUID, input *entities.UpdateSecurityInput) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserHandler handles the authenticated user's own account endpoints
type UserHandler struct {
	userUsecase UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// GetProfile gets the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateProfile updates the caller's profile fields
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.UpdateProfileInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateSecurity updates the caller's verification flags
// PATCH /api/v1/users/me/security
func (h *UserHandler) UpdateSecurity(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.UpdateSecurityInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.UpdateSecurity(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ChangePassword changes the caller's password
// POST /api/v1/users/me/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.ChangePasswordInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "password changed",
	})
}

// DeleteAccount soft-deletes the caller's account
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	if err := h.userUsecase.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "account deleted",
	})
}
