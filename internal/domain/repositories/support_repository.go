package repositories

import (
	"context"

	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
)

// SupportRepository defines support chat data operations. Messages are
// append-only; chats are soft-deleted.
type SupportRepository interface {
	CreateChat(ctx context.Context, chat *entities.SupportChat) error
	GetChat(ctx context.Context, id uuid.UUID) (*entities.SupportChat, error)
	DeleteChat(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, msg *entities.SupportMessage) error
	GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error)
}
