package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultExchange = "storefront.notifications"

	CustomerConfirmationRoutingKey = "email.order.confirmation.customer"
	StoreConfirmationRoutingKey    = "email.order.confirmation.store"
	StoreContactRoutingKey         = "email.contact.store"

	publishTimeout = 3 * time.Second
)

// Publisher is the subset of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EmailMessage is the JSON body consumed by the mail worker.
type EmailMessage struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	To          string    `json:"to"`
	ReplyTo     string    `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTML        string    `json:"html"`
	Timestamp   time.Time `json:"timestamp"`
}

type RabbitNotifier struct {
	pub          Publisher
	exchange     string
	storeAddress string
	logger       *zap.Logger
}

var _ port.Notifier = (*RabbitNotifier)(nil)

func NewRabbitNotifier(pub Publisher, exchange, storeAddress string, logger *zap.Logger) *RabbitNotifier {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &RabbitNotifier{
		pub:          pub,
		exchange:     exchange,
		storeAddress: storeAddress,
		logger:       logger.Named("rabbit-notifier"),
	}
}

// DeclareExchange creates the durable topic exchange notifications are published to.
func DeclareExchange(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	return nil
}

func (n *RabbitNotifier) SendOrderConfirmation(ctx context.Context, order domain.Order) error {
	emails, err := confirmationEmails(order, n.storeAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}

	var errs []error
	for i, email := range emails {
		key := CustomerConfirmationRoutingKey
		if i > 0 {
			key = StoreConfirmationRoutingKey
		}

		if err := n.publish(ctx, key, order.OrderNumber, email); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", key, err))
			continue
		}
		n.logger.Debug("confirmation email queued",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("routingKey", key))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}
	return nil
}

func (n *RabbitNotifier) SendContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	email, err := contactEmail(msg, n.storeAddress)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}

	if err := n.publish(ctx, StoreContactRoutingKey, "", email); err != nil {
		return fmt.Errorf("%w: publish %s: %w", domain.ErrNotification, StoreContactRoutingKey, err)
	}

	n.logger.Debug("contact email queued", zap.String("replyTo", email.ReplyTo))
	return nil
}

func (n *RabbitNotifier) publish(ctx context.Context, routingKey, orderNumber string, email Email) error {
	msg := EmailMessage{
		ID:          uuid.New(),
		Type:        routingKey,
		OrderNumber: orderNumber,
		To:          email.To,
		ReplyTo:     email.ReplyTo,
		Subject:     email.Subject,
		HTML:        email.HTML,
		Timestamp:   time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal email message: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.pub.PublishWithContext(pubCtx, n.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Timestamp:    msg.Timestamp,
		Body:         body,
	})
}
