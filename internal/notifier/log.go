package notifier

import (
	"context"
	"fmt"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"go.uber.org/zap"
)

// LogNotifier renders emails and logs them instead of sending.
// Used when no message broker is configured.
type LogNotifier struct {
	storeAddress string
	logger       *zap.Logger
}

var _ port.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(storeAddress string, logger *zap.Logger) *LogNotifier {
	return &LogNotifier{storeAddress: storeAddress, logger: logger.Named("log-notifier")}
}

func (n *LogNotifier) SendOrderConfirmation(_ context.Context, order domain.Order) error {
	emails, err := confirmationEmails(order, n.storeAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}

	for _, email := range emails {
		n.logger.Info("order confirmation email would be sent",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Int("htmlBytes", len(email.HTML)))
	}
	return nil
}

func (n *LogNotifier) SendContactMessage(_ context.Context, msg domain.ContactMessage) error {
	email, err := contactEmail(msg, n.storeAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}

	n.logger.Info("contact email would be sent",
		zap.String("to", email.To),
		zap.String("replyTo", email.ReplyTo),
		zap.String("subject", email.Subject),
		zap.Int("htmlBytes", len(email.HTML)))
	return nil
}
