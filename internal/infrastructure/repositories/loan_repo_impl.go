package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/infrastructure/models"
)

// LoanRepository implements loan data operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	m := &models.Loan{
		ID:                    loan.ID,
		UserID:                loan.UserID,
		Amount:                loan.Amount,
		Purpose:               loan.Purpose,
		Term:                  loan.Term,
		PaymentFrequency:      string(loan.PaymentFrequency),
		GuarantorName:         loan.GuarantorName,
		GuarantorRelationship: loan.GuarantorRelationship,
		GuarantorIDURL:        loan.GuarantorIDURL,
		Status:                string(loan.Status),
		CreatedAt:             loan.CreatedAt,
		UpdatedAt:             loan.UpdatedAt,
	}
	if loan.AdminComment.Valid {
		m.AdminComment = &loan.AdminComment.String
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	loan.ID = m.ID
	return nil
}

// GetByID gets a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	var m models.Loan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets all loans belonging to a user, newest first
func (r *LoanRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Loan, error) {
	var ms []models.Loan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	loans := make([]*entities.Loan, 0, len(ms))
	for _, m := range ms {
		model := m
		loans = append(loans, r.toEntity(&model))
	}
	return loans, nil
}

// UpdateStatusIf performs the transition as a single conditional update.
// Zero rows affected with an existing loan means the status changed
// underneath us, which surfaces as an invalid transition.
func (r *LoanRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next entities.LoanStatus, comment string) error {
	updates := map[string]interface{}{
		"status":     string(next),
		"updated_at": time.Now(),
	}
	if comment != "" {
		updates["admin_comment"] = comment
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// TopUpIf increases the principal and replaces the term, conditional on
// the loan still being in the expected status.
func (r *LoanRepository) TopUpIf(ctx context.Context, id uuid.UUID, expected entities.LoanStatus, additional decimal.Decimal, newTerm int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", additional),
			"term":       newTerm,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// Report aggregates loans created within [start, end] by status
func (r *LoanRepository) Report(ctx context.Context, start, end time.Time) ([]entities.LoanReportRow, error) {
	var rows []struct {
		Status string
		Count  int64
		Total  decimal.Decimal
	}

	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.LoanReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.LoanReportRow{
			Status: entities.LoanStatus(row.Status),
			Count:  row.Count,
			Total:  row.Total,
		})
	}
	return out, nil
}

// classifyMiss distinguishes a missing loan from a status mismatch after
// a conditional update touched no rows.
func (r *LoanRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	var count int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Loan{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidTransition
}

func (r *LoanRepository) toEntity(m *models.Loan) *entities.Loan {
	return &entities.Loan{
		ID:                    m.ID,
		UserID:                m.UserID,
		Amount:                m.Amount,
		Purpose:               m.Purpose,
		Term:                  m.Term,
		PaymentFrequency:      entities.PaymentFrequency(m.PaymentFrequency),
		GuarantorName:         m.GuarantorName,
		GuarantorRelationship: m.GuarantorRelationship,
		GuarantorIDURL:        m.GuarantorIDURL,
		Status:                entities.LoanStatus(m.Status),
		AdminComment:          null.StringFromPtr(m.AdminComment),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
