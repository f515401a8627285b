package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Loan struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount                decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Purpose               string          `gorm:"type:varchar(255);not null"`
	Term                  int             `gorm:"not null"`
	PaymentFrequency      string          `gorm:"type:varchar(10);not null"`
	GuarantorName         string          `gorm:"type:varchar(100);not null"`
	GuarantorRelationship string          `gorm:"type:varchar(50);not null"`
	GuarantorIDURL        string          `gorm:"column:guarantor_id_url;type:varchar(512);not null"`
	Status                string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminComment          *string         `gorm:"type:varchar(500)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
