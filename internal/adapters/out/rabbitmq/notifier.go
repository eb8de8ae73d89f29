// Package rabbitmq publishes driver notifications to a RabbitMQ topic
// exchange. Each driver's device consumes a queue bound to its own routing
// key.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the AMQP surface the notifier needs; satisfied by
// *amqp.Channel.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(
		ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
	) error
}

// notificationMessage is the wire format of a driver notification.
type notificationMessage struct {
	DriverID string            `json:"driver_id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
}

// AmqpDriverNotifier implements DriverNotifier over a topic exchange.
type AmqpDriverNotifier struct {
	channel  channel
	exchange string
}

// NewAmqpDriverNotifier creates a notifier publishing to the given exchange.
func NewAmqpDriverNotifier(ch channel, exchange string) *AmqpDriverNotifier {
	return &AmqpDriverNotifier{
		channel:  ch,
		exchange: exchange,
	}
}

// NotifyDriver publishes the notification with a per-driver routing key.
func (n *AmqpDriverNotifier) NotifyDriver(
	ctx context.Context,
	driverID kernel.UUID,
	notification ports.Notification,
) error {
	body, err := json.Marshal(notificationMessage{
		DriverID: driverID.String(),
		Title:    notification.Title,
		Body:     notification.Body,
		Data:     notification.Data,
	})
	if err != nil {
		return err
	}

	if err = n.channel.ExchangeDeclare(
		n.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	routingKey := fmt.Sprintf("driver.notify.%s", driverID)

	return n.channel.PublishWithContext(
		ctx,
		n.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
