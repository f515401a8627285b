package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	Role             string    `gorm:"type:varchar(50);not null;default:'user'"`
	FullName         string    `gorm:"type:varchar(100);not null"`
	NationalIDNumber string    `gorm:"column:national_id_number;type:varchar(50)"`
	PhoneNumber      string    `gorm:"type:varchar(30)"`
	Address          string    `gorm:"type:varchar(255)"`
	DateOfBirth      time.Time `gorm:"type:date"`
	Gender           string    `gorm:"type:varchar(10)"`
	EmailVerified    bool      `gorm:"not null;default:false"`
	PhoneVerified    bool      `gorm:"not null;default:false"`
	IDImageURL       string    `gorm:"column:id_image_url;type:varchar(512)"`
	ProfileImageURL  string    `gorm:"column:profile_image_url;type:varchar(512)"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
