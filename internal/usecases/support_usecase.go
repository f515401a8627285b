package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/domain/repositories"
	"lendcore.backend/internal/infrastructure/email"
	"lendcore.backend/pkg/logger"
	"lendcore.backend/pkg/utils"
)

// SupportUsecase bridges users to the support team. Chat state is the
// source of truth; forwarding by email is best effort and never blocks
// the write.
type SupportUsecase struct {
	supportRepo repositories.SupportRepository
	uow         repositories.UnitOfWork
	mailer      email.Mailer
}

// NewSupportUsecase creates a new support usecase
func NewSupportUsecase(supportRepo repositories.SupportRepository, uow repositories.UnitOfWork, mailer email.Mailer) *SupportUsecase {
	return &SupportUsecase{
		supportRepo: supportRepo,
		uow:         uow,
		mailer:      mailer,
	}
}

// SendContactMessage opens a chat and appends the first message in one
// transaction, then forwards the message to the support inbox.
func (u *SupportUsecase) SendContactMessage(ctx context.Context, userID uuid.UUID, input *entities.ContactMessageInput) (*entities.SupportChat, error) {
	now := time.Now()
	chat := &entities.SupportChat{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Subject:   input.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	msg := &entities.SupportMessage{
		ID:        utils.GenerateUUIDv7(),
		ChatID:    chat.ID,
		SenderID:  userID,
		Body:      input.Message,
		CreatedAt: now,
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.supportRepo.CreateChat(txCtx, chat); err != nil {
			return err
		}
		return u.supportRepo.CreateMessage(txCtx, msg)
	})
	if err != nil {
		return nil, err
	}

	if err := u.mailer.SendContactMessage(ctx, input.Subject, input.Message, chat.ID, userID); err != nil {
		logger.Error(ctx, "failed to forward support message", zap.Error(err),
			zap.String("chat_id", chat.ID.String()))
	}
	return chat, nil
}

// GetChat gets a chat by ID
func (u *SupportUsecase) GetChat(ctx context.Context, chatID uuid.UUID) (*entities.SupportChat, error) {
	return u.getChat(ctx, chatID)
}

// StartChat opens an empty chat for a user
func (u *SupportUsecase) StartChat(ctx context.Context, userID uuid.UUID, input *entities.StartChatInput) (*entities.SupportChat, error) {
	now := time.Now()
	chat := &entities.SupportChat{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Subject:   input.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.supportRepo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// Reply appends a message to an existing chat
func (u *SupportUsecase) Reply(ctx context.Context, chatID, senderID uuid.UUID, body string) (*entities.SupportMessage, error) {
	if _, err := u.getChat(ctx, chatID); err != nil {
		return nil, err
	}

	msg := &entities.SupportMessage{
		ID:        utils.GenerateUUIDv7(),
		ChatID:    chatID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := u.supportRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages returns a chat's messages in chronological order. A chat
// with no messages reads as not found.
func (u *SupportUsecase) Messages(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error) {
	if _, err := u.getChat(ctx, chatID); err != nil {
		return nil, err
	}

	msgs, err := u.supportRepo.GetChatMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, domainerrors.NotFound("no messages found for this chat")
	}
	return msgs, nil
}

// DeleteChat soft-deletes a chat
func (u *SupportUsecase) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	if _, err := u.getChat(ctx, chatID); err != nil {
		return err
	}
	return u.supportRepo.DeleteChat(ctx, chatID)
}

func (u *SupportUsecase) getChat(ctx context.Context, chatID uuid.UUID) (*entities.SupportChat, error) {
	chat, err := u.supportRepo.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("chat not found")
		}
		return nil, err
	}
	return chat, nil
}
