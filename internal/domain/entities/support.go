package entities

import (
	"time"

	"github.com/google/uuid"
)

// SupportChat represents a support conversation owned by one user
type SupportChat struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Subject   string     `json:"subject,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// SupportMessage represents an append-only message within a chat
type SupportMessage struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chatId"`
	SenderID  uuid.UUID `json:"senderId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactMessageInput represents input for a support contact message
type ContactMessageInput struct {
	Subject string `json:"subject" validate:"required,min=1"`
	Message string `json:"message" validate:"required,min=1"`
}

// StartChatInput represents input for opening a chat without a message
type StartChatInput struct {
	Subject string `json:"subject" validate:"required,min=1"`
}
