package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/flowbit/helpdesk/internal/config"
)

// AMQPPublisher mirrors ticket events onto a durable RabbitMQ queue for
// external consumers (the workflow engine). Publishing is best effort: broker
// failures are logged and never fail the originating request.
type AMQPPublisher struct {
	url    string
	queue  string
	logger *zap.Logger
}

// NewAMQPPublisher builds a publisher, or nil when no broker is configured.
func NewAMQPPublisher(cfg config.EventsConfig, logger *zap.Logger) *AMQPPublisher {
	if cfg.AMQPURL == "" {
		return nil
	}
	return &AMQPPublisher{url: cfg.AMQPURL, queue: cfg.QueueName, logger: logger}
}

// RegisterOn subscribes the publisher to all ticket event types.
func (p *AMQPPublisher) RegisterOn(dispatcher Dispatcher) {
	if p == nil || dispatcher == nil {
		return
	}
	for _, eventType := range []EventType{
		EventTicketCreated,
		EventTicketStatusChanged,
		EventTicketAssigned,
		EventTicketDeleted,
	} {
		dispatcher.Subscribe(eventType, p.publish)
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, event Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("amqp dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("amqp channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.logger.Warn("amqp queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("amqp marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.logger.Warn("amqp publish failed", zap.Error(err))
		return err
	}
	return nil
}
