// Package email is the out-of-band notification bridge. The core treats
// delivery as best effort: loan and payment state never depends on it.
package email

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lendcore.backend/pkg/logger"
)

// Mailer is the consumed notification interface
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, code string) error
	SendPasswordResetEmail(ctx context.Context, email, link string) error
	SendContactMessage(ctx context.Context, subject, body string, chatID, userID uuid.UUID) error
}

// LogMailer records outbound mail through the structured logger. It
// stands in for the SMTP relay in development and tests; swapping the
// transport does not touch the callers.
type LogMailer struct {
	from string
}

// NewLogMailer creates a mailer that logs instead of delivering
func NewLogMailer(from string) *LogMailer {
	return &LogMailer{from: from}
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	logger.Info(ctx, "verification email queued",
		zap.String("from", m.from),
		zap.String("to", email),
		zap.String("code", code),
	)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(ctx context.Context, email, link string) error {
	logger.Info(ctx, "password reset email queued",
		zap.String("from", m.from),
		zap.String("to", email),
		zap.String("link", link),
	)
	return nil
}

func (m *LogMailer) SendContactMessage(ctx context.Context, subject, body string, chatID, userID uuid.UUID) error {
	logger.Info(ctx, "support message forwarded",
		zap.String("from", m.from),
		zap.String("subject", subject),
		zap.String("chat_id", chatID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("body_len", len(body)),
	)
	return nil
}
