package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ContactService forwards contact form messages to the store.
type ContactService struct {
	notifier port.Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

func NewContactService(notifier port.Notifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		notifier: notifier,
		validate: newValidator(),
		logger:   logger.Named("contact"),
	}
}

// Send delivers the message before returning so the sender learns whether it went out.
func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	msg = domain.ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}

	if err := validateStruct(s.validate, msg); err != nil {
		return err
	}

	if err := s.notifier.SendContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("notifier.SendContactMessage: %w", err)
	}

	s.logger.Info("contact message sent", zap.String("from", msg.Email), zap.String("subject", msg.Subject))
	return nil
}
