package rmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"driver-hub/internal/shared/mq"
)

type broker struct {
	ch *amqp091.Channel
}

// Broker publishes driver events onto the driver_events topic exchange.
type Broker interface {
	Publish(ctx context.Context, routingKey string, data interface{}) error
}

func NewBroker(ch *amqp091.Channel) Broker {
	return &broker{ch: ch}
}

func (b *broker) Publish(ctx context.Context, routingKey string, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return b.ch.PublishWithContext(ctx,
		mq.DriverEventsExchange, // exchange
		routingKey,              // routing key
		false,                   // mandatory
		false,                   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		})
}
