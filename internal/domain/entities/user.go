package entities

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted at registration
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents a user entity
type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	FullName         string     `json:"fullName"`
	NationalIDNumber string     `json:"nationalIdNumber"`
	PhoneNumber      string     `json:"phoneNumber"`
	Address          string     `json:"address"`
	DateOfBirth      time.Time  `json:"dateOfBirth"`
	Gender           string     `json:"gender"`
	EmailVerified    bool       `json:"emailVerified"`
	PhoneVerified    bool       `json:"phoneVerified"`
	IDImageURL       string     `json:"idImageUrl,omitempty"`
	ProfileImageURL  string     `json:"profileImageUrl,omitempty"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"-"`
}

// RegisterInput represents the multipart registration form fields
type RegisterInput struct {
	Email            string `form:"email" validate:"required,email"`
	Password         string `form:"password" validate:"required,min=8"`
	FullName         string `form:"fullName" validate:"required"`
	NationalIDNumber string `form:"nationalIdNumber" validate:"required"`
	PhoneNumber      string `form:"phoneNumber" validate:"required"`
	Address          string `form:"address" validate:"required"`
	DateOfBirth      string `form:"dateOfBirth" validate:"required,datestring"`
	Gender           string `form:"gender" validate:"required,oneof=male female other"`
}

// LoginInput represents input for the first login step
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyCodeInput represents the OTP verification step
type VerifyCodeInput struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6"`
}

// ResetPasswordInput requests a password reset link
type ResetPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// SetNewPasswordInput completes a password reset
type SetNewPasswordInput struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UpdateProfileInput updates mutable profile fields
type UpdateProfileInput struct {
	FullName    string `json:"name" validate:"omitempty,min=1"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone" validate:"omitempty,min=3"`
}

// UpdateSecurityInput toggles verification flags
type UpdateSecurityInput struct {
	EmailVerified *bool `json:"emailVerified"`
	PhoneVerified *bool `json:"phoneVerified"`
}

// ChangePasswordInput represents input for changing user password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
