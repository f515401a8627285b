package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendcore.backend/internal/domain/entities"
	domainerrors "lendcore.backend/internal/domain/errors"
	"lendcore.backend/internal/interfaces/http/middleware"
	"lendcore.backend/internal/interfaces/http/response"
	"lendcore.backend/internal/validation"
)

type SupportService interface {
	SendContactMessage(ctx context.Context, userID uuid.UUID, input *entities.ContactMessageInput) (*entities.SupportChat, error)
	StartChat(ctx context.Context, userID uuid.UUID, input *entities.StartChatInput) (*entities.SupportChat, error)
	GetChat(ctx context.Context, chatID uuid.UUID) (*entities.SupportChat, error)
	Reply(ctx context.Context, chatID, senderID uuid.UUID, body string) (*entities.SupportMessage, error)
	Messages(ctx context.Context, chatID uuid.UUID) ([]*entities.SupportMessage, error)
	DeleteChat(ctx context.Context, chatID uuid.UUID) error
}

// SupportHandler handles support chat endpoints
type SupportHandler struct {
	supportUsecase SupportService
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(supportUsecase SupportService) *SupportHandler {
	return &SupportHandler{supportUsecase: supportUsecase}
}

// Contact opens a support chat with an initial message
// POST /api/v1/support/contact
func (h *SupportHandler) Contact(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.ContactMessageInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	chat, err := h.supportUsecase.SendContactMessage(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, chat)
}

// StartChat opens an empty chat
// POST /api/v1/support/chats
func (h *SupportHandler) StartChat(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input entities.StartChatInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	chat, err := h.supportUsecase.StartChat(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, chat)
}

type replyInput struct {
	Message string `json:"message" validate:"required,min=1"`
}

// Reply appends a message to a chat
// POST /api/v1/support/chats/:id/messages
func (h *SupportHandler) Reply(c *gin.Context) {
	chat, ok := h.accessibleChat(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	var input replyInput
	if err := validation.BindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.supportUsecase.Reply(c.Request.Context(), chat.ID, userID, input.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// Messages returns a chat's messages in order
// GET /api/v1/support/chats/:id/messages
func (h *SupportHandler) Messages(c *gin.Context) {
	chat, ok := h.accessibleChat(c)
	if !ok {
		return
	}

	msgs, err := h.supportUsecase.Messages(c.Request.Context(), chat.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

// DeleteChat removes a chat
// DELETE /api/v1/support/chats/:id
func (h *SupportHandler) DeleteChat(c *gin.Context) {
	chat, ok := h.accessibleChat(c)
	if !ok {
		return
	}

	if err := h.supportUsecase.DeleteChat(c.Request.Context(), chat.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "chat deleted",
	})
}

// accessibleChat resolves the chat named in the route and enforces
// ownership. Admins and loan officers may act on any chat; other
// callers only on their own. On failure the error response has already
// been written.
func (h *SupportHandler) accessibleChat(c *gin.Context) (*entities.SupportChat, bool) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid chat ID"))
		return nil, false
	}

	chat, err := h.supportUsecase.GetChat(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	role, _ := middleware.GetUserRole(c)
	if role != entities.RoleAdmin && role != entities.RoleLoanOfficer {
		userID, ok := middleware.GetUserID(c)
		if !ok || chat.UserID != userID {
			response.Error(c, domainerrors.Forbidden("insufficient permissions"))
			return nil, false
		}
	}
	return chat, true
}
