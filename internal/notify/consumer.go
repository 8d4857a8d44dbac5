package notify

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"driver-hub/internal/shared/util"
)

// Queue is bound to the driver_events exchange for all driver.* keys.
const Queue = "driver_notifications"

type Consumer struct {
	channel *amqp.Channel
	history *History
	ws      *WSManager
	logger  *util.Logger
}

func NewConsumer(ch *amqp.Channel, history *History, ws *WSManager, logger *util.Logger) *Consumer {
	return &Consumer{channel: ch, history: history, ws: ws, logger: logger}
}

func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		Queue,
		"",
		false, // manual acknowledgment
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			c.handle(ctx, msg)
		}
	}()

	c.logger.OK("NotifyConsumer", "driver_notifications consumer started")
	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery) {
	n, err := FromEvent(msg.RoutingKey, msg.Body, time.Now())
	if err != nil {
		c.logger.Error("NotifyConsumer", fmt.Errorf("[%s] dropping message: %w", msg.RoutingKey, err))
		// Don't requeue malformed messages
		msg.Nack(false, false)
		return
	}

	if err := c.history.Append(ctx, n); err != nil {
		c.logger.Error("NotifyConsumer", err)
		msg.Nack(false, true) // Requeue for retry
		return
	}

	if err := c.ws.SendToDriver(n.DriverID, n); err != nil {
		// Live push is best effort; the notification is already in the
		// backlog.
		c.logger.Error("NotifyConsumer", err)
	}

	msg.Ack(false)
}
