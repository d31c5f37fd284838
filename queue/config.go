package queue

// Config describes where activity events are published. An empty URI
// disables publishing.
type Config struct {
	// URI: The RabbitMQ connection URI, including credentials and vhost.
	URI string `mapstructure:"uri" validate:"omitempty,url"`
	// Exchange: The exchange events are published to. Declared on connect.
	Exchange string `mapstructure:"exchange"`
	// ExchangeType: "topic" unless configured otherwise.
	ExchangeType string `mapstructure:"exchange_type" validate:"omitempty,oneof=direct fanout topic headers"`
	// RoutingKeyPrefix: Prepended to the event name to build the routing key.
	RoutingKeyPrefix string `mapstructure:"routing_key_prefix"`
}

func (c Config) Enabled() bool {
	return c.URI != ""
}

type PublishConfig struct {
	// Exchange: The name of the exchange to be used for message publishing.
	Exchange string
	// ContentType: The content type of the message to be published.
	ContentType string
	// DeliveryMode: 1 = transient, 2 = persistent.
	DeliveryMode uint8
}
