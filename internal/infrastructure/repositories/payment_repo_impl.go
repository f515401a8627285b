package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"lendcore.backend/internal/domain/entities"
	"lendcore.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:            payment.ID,
		LoanID:        payment.LoanID,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		CreatedAt:     payment.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	return nil
}

// GetByLoanID returns the full payment history in chronological order
func (r *PaymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.Payment, error) {
	var ms []models.Payment
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toPaymentEntities(ms), nil
}

// GetBetweenDates returns payments within [start, end] inclusive
func (r *PaymentRepository) GetBetweenDates(ctx context.Context, loanID uuid.UUID, start, end time.Time) ([]*entities.Payment, error) {
	var ms []models.Payment
	if err := r.db.WithContext(ctx).
		Where("loan_id = ? AND created_at >= ? AND created_at <= ?", loanID, start, end).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toPaymentEntities(ms), nil
}

// SumByLoanID returns the total amount paid against a loan
func (r *PaymentRepository) SumByLoanID(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("loan_id = ?", loanID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func toPaymentEntities(ms []models.Payment) []*entities.Payment {
	out := make([]*entities.Payment, 0, len(ms))
	for _, m := range ms {
		out = append(out, &entities.Payment{
			ID:            m.ID,
			LoanID:        m.LoanID,
			Amount:        m.Amount,
			PaymentMethod: m.PaymentMethod,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
