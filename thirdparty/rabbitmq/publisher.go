package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	EventListingCreated = "listing.created"
	EventListingGiven   = "listing.given"
	EventListingDeleted = "listing.deleted"
)

// Publisher emits listing lifecycle events.
type Publisher interface {
	PublishListingEvent(ctx context.Context, event ListingEvent) error
	Close() error
}

type ListingEvent struct {
	Type       string    `json:"type"`
	ProductID  uint64    `json:"product_id"`
	UserID     uint64    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type amqpPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewPublisher(host string, port int, user, password, exchange string) (Publisher, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the topic exchange, consumers bind by event type
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &amqpPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *amqpPublisher) PublishListingEvent(ctx context.Context, event ListingEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
}

func (p *amqpPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

func newPublishing(event ListingEvent) (amqp091.Publishing, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}, nil
}
