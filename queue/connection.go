package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultExchangeType = "topic"

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection dials RabbitMQ, opens a channel and declares the durable
// events exchange.
func NewConnection(config Config) (*Connection, error) {
	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	kind := config.ExchangeType
	if kind == "" {
		kind = defaultExchangeType
	}
	if err := ch.ExchangeDeclare(
		config.Exchange,
		kind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", config.Exchange, err)
	}

	return &Connection{conn, ch}, nil
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
