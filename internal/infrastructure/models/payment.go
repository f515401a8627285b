package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	LoanID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	CreatedAt     time.Time       `gorm:"index"`
}
