package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/pkg/utils"
)

// PaymentUsecase records payments and derives statements from the
// append-only ledger. The outstanding balance is never stored; it is
// computed from the loan amount and the payment sum on every write.
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	loanRepo    repositories.LoanRepository
	uow         repositories.UnitOfWork
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	loanRepo repositories.LoanRepository,
	uow repositories.UnitOfWork,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		loanRepo:    loanRepo,
		uow:         uow,
	}
}

// Record appends a payment to an active loan's ledger. The balance check
// and the insert run in one transaction so concurrent payments cannot
// jointly exceed the outstanding amount.
func (u *PaymentUsecase) Record(ctx context.Context, input *entities.RecordPaymentInput) (*entities.Payment, error) {
	loanID, err := uuid.Parse(input.LoanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid loan ID")
	}

	amount := decimal.NewFromFloat(input.Amount)
	if !amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be a positive number")
	}

	payment := &entities.Payment{
		ID:            utils.GenerateUUIDv7(),
		LoanID:        loanID,
		Amount:        amount,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		loan, err := u.loanRepo.GetByID(txCtx, loanID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("loan not found")
			}
			return err
		}
		if loan.Status != entities.LoanStatusActive {
			return domainerrors.LoanNotActive("payments can only be recorded against active loans")
		}

		paid, err := u.paymentRepo.SumByLoanID(txCtx, loanID)
		if err != nil {
			return err
		}
		outstanding := loan.Amount.Sub(paid)
		if amount.GreaterThan(outstanding) {
			return domainerrors.BadRequest("payment exceeds outstanding balance")
		}

		return u.paymentRepo.Create(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// History returns a loan's full payment history in chronological order
func (u *PaymentUsecase) History(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error) {
	if _, err := u.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("loan not found")
		}
		return nil, err
	}
	return u.paymentRepo.GetByLoanID(ctx, loanID)
}

// Statement builds a time-bounded view of the ledger. Both endpoints of
// the range are inclusive.
func (u *PaymentUsecase) Statement(ctx context.Context, loanID uuid.UUID, start, end time.Time) (*entities.Statement, error) {
	if end.Before(start) {
		return nil, domainerrors.BadRequest("startDate must not be after endDate")
	}

	if _, err := u.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("loan not found")
		}
		return nil, err
	}

	payments, err := u.paymentRepo.GetBetweenDates(ctx, loanID, start, end)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	return &entities.Statement{
		LoanID:    loanID,
		StartDate: start,
		EndDate:   end,
		Payments:  payments,
		Total:     total,
	}, nil
}

// OutstandingBalance returns the amount still owed on a loan
func (u *PaymentUsecase) OutstandingBalance(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return decimal.Zero, domainerrors.NotFound("loan not found")
		}
		return decimal.Zero, err
	}

	paid, err := u.paymentRepo.SumByLoanID(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	return loan.Amount.Sub(paid), nil
}
