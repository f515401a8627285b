package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/pkg/utils"
)

// LoanUsecase owns the loan lifecycle: every status change goes through
// the transition table and lands as one atomic conditional update.
type LoanUsecase struct {
	loanRepo repositories.LoanRepository
	userRepo repositories.UserRepository
}

// NewLoanUsecase creates a new loan usecase
func NewLoanUsecase(loanRepo repositories.LoanRepository, userRepo repositories.UserRepository) *LoanUsecase {
	return &LoanUsecase{
		loanRepo: loanRepo,
		userRepo: userRepo,
	}
}

// Apply creates a loan in pending status for an existing user
func (u *LoanUsecase) Apply(ctx context.Context, input *entities.ApplyLoanInput) (*entities.Loan, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid user ID")
	}

	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	now := time.Now()
	loan := &entities.Loan{
		ID:                    utils.GenerateUUIDv7(),
		UserID:                userID,
		Amount:                decimal.NewFromFloat(input.Amount),
		Purpose:               input.Purpose,
		Term:                  input.Term,
		PaymentFrequency:      entities.PaymentFrequency(input.PaymentFrequency),
		GuarantorName:         input.GuarantorName,
		GuarantorRelationship: input.GuarantorRelationship,
		GuarantorIDURL:        input.GuarantorIDURL,
		Status:                entities.LoanStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := u.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Get gets a loan by ID
func (u *LoanUsecase) Get(ctx context.Context, loanID uuid.UUID) (*entities.Loan, error) {
	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("loan not found")
		}
		return nil, err
	}
	return loan, nil
}

// ListByUser lists a user's loans, newest first
func (u *LoanUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error) {
	return u.loanRepo.GetByUserID(ctx, userID)
}

// UpdateStatus transitions a loan along the lifecycle graph. The write
// is conditional on the status observed here, so a concurrent transition
// surfaces as InvalidTransition rather than a silent overwrite.
func (u *LoanUsecase) UpdateStatus(ctx context.Context, loanID uuid.UUID, next entities.LoanStatus, comment string) (*entities.Loan, error) {
	if !entities.IsValidLoanStatus(next) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown loan status %q", next))
	}

	loan, err := u.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !entities.CanTransition(loan.Status, next) {
		return nil, domainerrors.InvalidTransition(
			fmt.Sprintf("cannot move loan from %s to %s", loan.Status, next))
	}

	if err := u.loanRepo.UpdateStatusIf(ctx, loanID, loan.Status, next, comment); err != nil {
		return nil, u.mapTransitionErr(err)
	}

	return u.Get(ctx, loanID)
}

// TopUp increases an active loan's principal and extends its term
func (u *LoanUsecase) TopUp(ctx context.Context, input *entities.TopUpLoanInput) (*entities.Loan, error) {
	loanID, err := uuid.Parse(input.LoanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid loan ID")
	}

	loan, err := u.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != entities.LoanStatusActive {
		return nil, domainerrors.LoanNotActive("only active loans can be topped up")
	}

	additional := decimal.NewFromFloat(input.AdditionalAmount)
	if err := u.loanRepo.TopUpIf(ctx, loanID, entities.LoanStatusActive, additional, input.NewTerm); err != nil {
		return nil, u.mapTransitionErr(err)
	}

	return u.Get(ctx, loanID)
}

// Liquidate closes an active loan
func (u *LoanUsecase) Liquidate(ctx context.Context, loanID uuid.UUID) error {
	loan, err := u.Get(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != entities.LoanStatusActive {
		return domainerrors.LoanNotActive("only active loans can be liquidated")
	}

	if err := u.loanRepo.UpdateStatusIf(ctx, loanID, entities.LoanStatusActive, entities.LoanStatusClosed, ""); err != nil {
		return u.mapTransitionErr(err)
	}
	return nil
}

// Reports aggregates loans created within [start, end] by status
func (u *LoanUsecase) Reports(ctx context.Context, start, end time.Time) (*entities.LoanReport, error) {
	if end.Before(start) {
		return nil, domainerrors.BadRequest("startDate must not be after endDate")
	}

	rows, err := u.loanRepo.Report(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &entities.LoanReport{
		StartDate: start,
		EndDate:   end,
		Rows:      rows,
	}, nil
}

func (u *LoanUsecase) mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("loan not found")
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.InvalidTransition("loan status changed concurrently")
	default:
		return err
	}
}
