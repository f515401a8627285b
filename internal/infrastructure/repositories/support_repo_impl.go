package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/infrastructure/models"
)

// SupportRepository implements support chat data operations
type SupportRepository struct {
	db *gorm.DB
}

// NewSupportRepository creates a new support repository
func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

// CreateChat creates a new support chat
func (r *SupportRepository) CreateChat(ctx context.Context, chat *entities.SupportChat) error {
	m := &models.SupportChat{
		ID:        chat.ID,
		UserID:    chat.UserID,
		Subject:   chat.Subject,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	chat.ID = m.ID
	return nil
}

// GetChat gets a chat by ID
func (r *SupportRepository) GetChat(ctx context.Context, id uuid.UUID) (*entities.SupportChat, error) {
	var m models.SupportChat
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.SupportChat{
		ID:        m.ID,
		UserID:    m.UserID,
		Subject:   m.Subject,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// DeleteChat soft deletes a chat
func (r *SupportRepository) DeleteChat(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SupportChat{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CreateMessage appends a message to a chat
func (r *SupportRepository) CreateMessage(ctx context.Context, msg *entities.SupportMessage) error {
	m := &models.SupportMessage{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	msg.ID = m.ID
	return nil
}

// GetChatMessages returns all messages in a chat, oldest first
func (r *SupportRepository) GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error) {
	var ms []models.SupportMessage
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.SupportMessage, 0, len(ms))
	for _, m := range ms {
		out = append(out, &entities.SupportMessage{
			ID:        m.ID,
			ChatID:    m.ChatID,
			SenderID:  m.SenderID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
