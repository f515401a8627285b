package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents an immutable payment record against a loan
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	LoanID        uuid.UUID       `json:"loanId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RecordPaymentInput represents input for recording a payment. The
// loan may be named in the body or by the route; the route wins.
type RecordPaymentInput struct {
	LoanID        string  `json:"loanId" validate:"omitempty,uuid"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
}

// StatementQuery represents the statement date-range query
type StatementQuery struct {
	LoanID    string `form:"loanId" validate:"required,uuid"`
	StartDate string `form:"startDate" validate:"required,datestring"`
	EndDate   string `form:"endDate" validate:"required,datestring"`
}

// Statement is a time-bounded view of a loan's payment history
type Statement struct {
	LoanID    uuid.UUID       `json:"loanId"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Payments  []*Payment      `json:"payments"`
	Total     decimal.Decimal `json:"total"`
}
