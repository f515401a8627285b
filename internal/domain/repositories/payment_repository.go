package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations. Payments are
// append-only; there are no update or delete operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error

	// GetByLoanID returns the full payment history in chronological order.
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error)

	// GetBetweenDates returns payments within [start, end] inclusive,
	// chronological.
	GetBetweenDates(ctx context.Context, loanID uuid.UUID, start, end time.Time) ([]*entities.Payment, error)

	// SumByLoanID returns the total amount paid against a loan.
	SumByLoanID(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}
