package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

type publisher struct {
	ch     *amqp.Channel
	config PublishConfig
}

func NewPublisher(ch *amqp.Channel, config PublishConfig) Publisher {
	if config.ContentType == "" {
		config.ContentType = "application/json"
	}
	if config.DeliveryMode == 0 {
		config.DeliveryMode = amqp.Persistent
	}
	return &publisher{ch, config}
}

// Publish publishes a message to the configured exchange under routingKey.
func (p *publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	message := amqp.Publishing{
		ContentType:  p.config.ContentType,
		Body:         body,
		DeliveryMode: p.config.DeliveryMode,
		Timestamp:    time.Now().UTC(),
	}

	return p.ch.PublishWithContext(
		ctx,
		p.config.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		message,
	)
}

// Close closes the publisher, releasing any resources it holds.
func (p *publisher) Close() error {
	return p.ch.Close()
}
