package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Publisher sends events to RabbitMQ.  Publishing is best effort: a
// disabled publisher does nothing, and failures are logged and returned so
// the caller can ignore them without interrupting the request.
type Publisher struct {
	url     string
	enabled bool
	log     log.FieldLogger
}

// NewPublisher constructs a Publisher.  When enabled is false every
// Publish call is a no-op.
func NewPublisher(url string, enabled bool, logger log.FieldLogger) *Publisher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Publisher{url: url, enabled: enabled, log: logger.WithField("component", "publisher")}
}

// Enabled reports whether events are sent at all.
func (p *Publisher) Enabled() bool { return p != nil && p.enabled }

// PublishServiceRecorded sends ev to the service.recorded queue.
func (p *Publisher) PublishServiceRecorded(ctx context.Context, ev ServiceRecordedEvent) error {
	return p.publish(ctx, ServiceRecordedQueue, ev)
}

// PublishInvoiceRendered sends ev to the invoice.rendered queue.
func (p *Publisher) PublishInvoiceRendered(ctx context.Context, ev InvoiceRenderedEvent) error {
	return p.publish(ctx, InvoiceRenderedQueue, ev)
}

// publish dials, declares the durable queue and sends one persistent
// message.  Each call uses its own connection.
func (p *Publisher) publish(ctx context.Context, queue string, event any) error {
	if !p.Enabled() {
		return nil
	}
	entry := p.log.WithField("queue", queue)

	msg, err := message(event)
	if err != nil {
		entry.WithError(err).Warn("marshal event failed")
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		entry.WithError(err).Warn("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		entry.WithError(err).Warn("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		entry.WithError(err).Warn("queue declare failed")
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		entry.WithError(err).Warn("publish failed")
		return err
	}
	entry.Debug("event published")
	return nil
}

func message(event any) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
