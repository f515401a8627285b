package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
	LoanStatusActive   LoanStatus = "active"
	LoanStatusClosed   LoanStatus = "closed"
)

// PaymentFrequency represents how often a loan is repaid
type PaymentFrequency string

const (
	FrequencyWeekly  PaymentFrequency = "weekly"
	FrequencyMonthly PaymentFrequency = "monthly"
)

// loanTransitions is the directed graph of permitted status changes.
// rejected and closed are terminal. Top-ups keep a loan active without
// going through this table; they are conditional writes on the current
// status, so active -> active is not an admissible transition here.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPending:  {LoanStatusApproved, LoanStatusRejected},
	LoanStatusApproved: {LoanStatusActive},
	LoanStatusActive:   {LoanStatusClosed},
}

// CanTransition reports whether a loan may move from one status to another
func CanTransition(from, to LoanStatus) bool {
	for _, next := range loanTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidLoanStatus reports whether s names a known loan status
func IsValidLoanStatus(s LoanStatus) bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected, LoanStatusActive, LoanStatusClosed:
		return true
	}
	return false
}

// Loan represents a loan entity
type Loan struct {
	ID                    uuid.UUID        `json:"id"`
	UserID                uuid.UUID        `json:"userId"`
	Amount                decimal.Decimal  `json:"amount"`
	Purpose               string           `json:"purpose"`
	Term                  int              `json:"term"`
	PaymentFrequency      PaymentFrequency `json:"paymentFrequency"`
	GuarantorName         string           `json:"guarantorName"`
	GuarantorRelationship string           `json:"guarantorRelationship"`
	GuarantorIDURL        string           `json:"guarantorIdUrl"`
	Status                LoanStatus       `json:"status"`
	AdminComment          null.String      `json:"adminComment,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// ApplyLoanInput represents input for a loan application
type ApplyLoanInput struct {
	UserID                string  `json:"userId" validate:"required,uuid"`
	Amount                float64 `json:"amount" validate:"required,gt=0"`
	Purpose               string  `json:"purpose" validate:"required"`
	Term                  int     `json:"term" validate:"required,gt=0"`
	PaymentFrequency      string  `json:"paymentFrequency" validate:"required,oneof=weekly monthly"`
	GuarantorName         string  `json:"guarantorName" validate:"required"`
	GuarantorRelationship string  `json:"guarantorRelationship" validate:"required"`
	GuarantorIDURL        string  `json:"guarantorIdUrl" validate:"required,url"`
}

// TopUpLoanInput represents input for topping up an active loan. The
// loan may be named in the body or by the route; the route wins.
type TopUpLoanInput struct {
	LoanID           string  `json:"loanId" validate:"omitempty,uuid"`
	AdditionalAmount float64 `json:"additionalAmount" validate:"required,gt=0"`
	NewTerm          int     `json:"newTerm" validate:"required,gt=0"`
}

// UpdateLoanStatusInput represents the admin status transition request
type UpdateLoanStatusInput struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected active"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// LoanReportRow aggregates loans by status for a reporting window
type LoanReportRow struct {
	Status LoanStatus      `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// LoanReport is the admin report over a date range
type LoanReport struct {
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Rows      []LoanReportRow `json:"rows"`
}
