package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
	"lendcore.backend/pkg/utils"
)

type AdminUserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	List(ctx context.Context, params utils.PaginationParams) ([]*entities.User, *utils.PaginationMeta, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) (*entities.User, error)
	UpdateSecurity(ctx context.Context, userID uuid.UUID, input *entities.UpdateSecurityInput) (*entities.User, error)
}

// AdminHandler handles administrative endpoints over users and loans
type AdminHandler struct {
	userUsecase AdminUserService
	loanUsecase LoanService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userUsecase AdminUserService, loanUsecase LoanService) *AdminHandler {
	return &AdminHandler{
		userUsecase: userUsecase,
		loanUsecase: loanUsecase,
	}
}

// ListUsers lists users with pagination
// GET /api/v1/admin/users?page=1&limit=10
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	params := utils.GetPaginationParams(page, limit)

	users, meta, err := h.userUsecase.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"meta":  meta,
	})
}

// GetUser gets a user by ID
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

type setActiveInput struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// SetUserActive activates or deactivates an account
// PATCH /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	var input setActiveInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userUsecase.SetActive(c.Request.Context(), userID, *input.IsActive); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "user updated",
	})
}

type assignRoleInput struct {
	Role string `json:"role" validate:"required,min=1"`
}

// AssignUserRole moves a user into a role
// PATCH /api/v1/admin/users/:id/role
func (h *AdminHandler) AssignUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	var input assignRoleInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.AssignRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateUserSecurity sets a user's verification flags
// PATCH /api/v1/admin/users/:id/security
func (h *AdminHandler) UpdateUserSecurity(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
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

// UpdateLoanStatus transitions a loan's status
// PATCH /api/v1/admin/loans/:id/status
func (h *AdminHandler) UpdateLoanStatus(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	var input entities.UpdateLoanStatusInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.loanUsecase.UpdateStatus(c.Request.Context(), loanID, entities.LoanStatus(input.Status), input.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// ListUserLoans lists a user's loans
// GET /api/v1/admin/users/:id/loans
func (h *AdminHandler) ListUserLoans(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	if _, err := h.userUsecase.Get(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	loans, err := h.loanUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// LoanReports aggregates loans by status over a date range
// GET /api/v1/admin/loans/reports?startDate=...&endDate=...
func (h *AdminHandler) LoanReports(c *gin.Context) {
	start, err := validation.ParseDate(c.Query("startDate"))
	if err != nil {
		response.Error(c, domainerrors.Validation(map[string]string{"startDate": "must be a valid date"}))
		return
	}
	end, err := validation.ParseDate(c.Query("endDate"))
	if err != nil {
		response.Error(c, domainerrors.Validation(map[string]string{"endDate": "must be a valid date"}))
		return
	}
	if start.After(end) {
		response.Error(c, domainerrors.Validation(map[string]string{"startDate": "must not be after endDate"}))
		return
	}
	// Report windows are inclusive of the whole end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := h.loanUsecase.Reports(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}
