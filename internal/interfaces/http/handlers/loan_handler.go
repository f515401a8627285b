package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/middleware"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
)

type LoanService interface {
	Apply(ctx context.Context, input *entities.ApplyLoanInput) (*entities.Loan, error)
	Get(ctx context.Context, loanID uuid.UUID) (*entities.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error)
	UpdateStatus(ctx context.Context, loanID uuid.UUID, next entities.LoanStatus, comment string) (*entities.Loan, error)
	TopUp(ctx context.Context, input *entities.TopUpLoanInput) (*entities.Loan, error)
	Liquidate(ctx context.Context, loanID uuid.UUID) error
	Reports(ctx context.Context, start, end time.Time) (*entities.LoanReport, error)
}

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanUsecase LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanUsecase LoanService) *LoanHandler {
	return &LoanHandler{loanUsecase: loanUsecase}
}

// Apply submits a loan application for the caller
// POST /api/v1/loans
func (h *LoanHandler) Apply(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.ApplyLoanInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	// The applicant is always the caller regardless of the body.
	input.UserID = userID.String()

	loan, err := h.loanUsecase.Apply(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// Get gets a loan by ID. Non-admin callers can only read their own.
// GET /api/v1/loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	loan, err := h.loanUsecase.Get(c.Request.Context(), loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canAccess(c, loan) {
		response.Error(c, domainerrors.Forbidden("insufficient permissions"))
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// ListMine lists the caller's loans
// GET /api/v1/loans
func (h *LoanHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	loans, err := h.loanUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// TopUp increases an active loan's principal. Registered both nested
// under /loans/:id and flat with the loan named in the body.
// POST /api/v1/loans/:id/topup
// POST /api/v1/loans/topup
func (h *LoanHandler) TopUp(c *gin.Context) {
	var input entities.TopUpLoanInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	if id := c.Param("id"); id != "" {
		input.LoanID = id
	}
	if input.LoanID == "" {
		response.Error(c, domainerrors.Validation(map[string]string{"loanId": "loanId is required"}))
		return
	}

	loanID, err := uuid.Parse(input.LoanID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	existing, err := h.loanUsecase.Get(c.Request.Context(), loanID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, existing) {
		response.Error(c, domainerrors.Forbidden("insufficient permissions"))
		return
	}

	loan, err := h.loanUsecase.TopUp(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// ListForUser lists a named user's loans. Staff may read anyone's;
// other callers only their own.
// GET /api/v1/users/:userId/loans
func (h *LoanHandler) ListForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role != entities.RoleAdmin && role != entities.RoleLoanOfficer {
		callerID, ok := middleware.GetUserID(c)
		if !ok || callerID != userID {
			response.Error(c, domainerrors.Forbidden("insufficient permissions"))
			return
		}
	}

	loans, err := h.loanUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// Liquidate closes an active loan
// POST /api/v1/loans/:id/liquidate
func (h *LoanHandler) Liquidate(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	existing, err := h.loanUsecase.Get(c.Request.Context(), loanID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, existing) {
		response.Error(c, domainerrors.Forbidden("insufficient permissions"))
		return
	}

	if err := h.loanUsecase.Liquidate(c.Request.Context(), loanID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "loan closed",
	})
}

// canAccess reports whether the caller may act on a loan. Admins and
// loan officers see all loans; users only their own.
func (h *LoanHandler) canAccess(c *gin.Context, loan *entities.Loan) bool {
	role, _ := middleware.GetUserRole(c)
	if role == entities.RoleAdmin || role == entities.RoleLoanOfficer {
		return true
	}
	userID, ok := middleware.GetUserID(c)
	return ok && loan.UserID == userID
}
