package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
)

// LoanRepository defines loan data operations.
//
// Status mutations are conditional on the expected current status so that
// every transition is a single atomic compare-and-set against storage.
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error)

	// UpdateStatusIf moves a loan from expected to next in one conditional
	// update. It returns ErrNotFound when the loan does not exist and
	// ErrInvalidTransition when the loan exists but its status no longer
	// matches expected.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next entities.LoanStatus, comment string) error

	// TopUpIf increases amount and replaces term, conditional on the loan
	// being in the expected status.
	TopUpIf(ctx context.Context, id uuid.UUID, expected entities.LoanStatus, additional decimal.Decimal, newTerm int) error

	// Report aggregates loans created within [start, end] by status.
	Report(ctx context.Context, start, end time.Time) ([]entities.LoanReportRow, error)
}
