package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
)

type PaymentService interface {
	Record(ctx context.Context, input *entities.RecordPaymentInput) (*entities.Payment, error)
	History(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error)
	Statement(ctx context.Context, loanID uuid.UUID, start, end time.Time) (*entities.Statement, error)
	OutstandingBalance(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// loanIDParam returns the loan id path segment regardless of which
// route shape matched.
func loanIDParam(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Param("loanId")
}

// Record records a payment against a loan. Registered both nested
// under /loans/:id and flat with the loan named in the body.
// POST /api/v1/loans/:id/payments
// POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var input entities.RecordPaymentInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	if id := loanIDParam(c); id != "" {
		input.LoanID = id
	}
	if input.LoanID == "" {
		response.Error(c, domainerrors.Validation(map[string]string{"loanId": "loanId is required"}))
		return
	}
	if _, err := uuid.Parse(input.LoanID); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	payment, err := h.paymentUsecase.Record(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// History returns a loan's full payment history
// GET /api/v1/loans/:id/payments
// GET /api/v1/payments/:loanId
func (h *PaymentHandler) History(c *gin.Context) {
	loanID, err := uuid.Parse(loanIDParam(c))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	payments, err := h.paymentUsecase.History(c.Request.Context(), loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// Statement returns a date-bounded statement for a loan. The loan comes
// from the route when nested or from the loanId query on the flat path.
// GET /api/v1/loans/:id/statement?startDate=...&endDate=...
// GET /api/v1/payments/statement?loanId=...&startDate=...&endDate=...
func (h *PaymentHandler) Statement(c *gin.Context) {
	var query entities.StatementQuery
	query.LoanID = loanIDParam(c)
	if query.LoanID == "" {
		query.LoanID = c.Query("loanId")
	}
	query.StartDate = c.Query("startDate")
	query.EndDate = c.Query("endDate")
	if err := validation.Validate(&query); err != nil {
		response.Error(c, err)
		return
	}

	loanID, err := uuid.Parse(query.LoanID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	start, err := validation.ParseDate(query.StartDate)
	if err != nil {
		response.Error(c, domainerrors.Validation(map[string]string{"startDate": "must be a valid date"}))
		return
	}
	end, err := validation.ParseDate(query.EndDate)
	if err != nil {
		response.Error(c, domainerrors.Validation(map[string]string{"endDate": "must be a valid date"}))
		return
	}
	if start.After(end) {
		response.Error(c, domainerrors.Validation(map[string]string{"startDate": "must not be after endDate"}))
		return
	}
	// Statements are inclusive of the whole end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	statement, err := h.paymentUsecase.Statement(c.Request.Context(), loanID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, statement)
}

// Balance returns the outstanding balance on a loan
// GET /api/v1/loans/:id/balance
func (h *PaymentHandler) Balance(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan ID"))
		return
	}

	balance, err := h.paymentUsecase.OutstandingBalance(c.Request.Context(), loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"loanId":      loanID,
		"outstanding": balance,
	})
}
