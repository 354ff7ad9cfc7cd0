package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL      string
	Queues   []string
	Prefetch int
}

// RabbitMQ publishes JSON jobs to durable queues and hands deliveries to
// consumers for explicit acknowledgement.
type RabbitMQ struct {
	conn     *amqp.Connection
	prefetch int
	logger   *slog.Logger

	pubMu   sync.Mutex
	channel *amqp.Channel

	consMu    sync.Mutex
	consumers []*amqp.Channel
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	for _, name := range cfg.Queues {
		if err := declare(ch, name); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}

	logger.Info("connected to rabbitmq", "queues", cfg.Queues, "prefetch", prefetch)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		prefetch: prefetch,
		logger:   logger.With("component", "rabbitmq"),
	}, nil
}

func declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

// Enqueue publishes payload as a persistent JSON message and waits for the
// broker to confirm it.
func (r *RabbitMQ) Enqueue(ctx context.Context, queue string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",
		queue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await publish confirm: %w", err)
	}
	if !acked {
		return fmt.Errorf("publish to %s: broker nacked message", queue)
	}

	r.logger.Debug("enqueued message", "queue", queue, "bytes", len(body))
	return nil
}

// Consume delivers messages from queue on a dedicated channel with the
// configured prefetch. The returned channel closes when ctx is done. The AMQP
// channel stays open until Close so in-flight messages can still be settled.
func (r *RabbitMQ) Consume(ctx context.Context, queue string) (<-chan Message, error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consumer channel: %w", err)
	}

	if err := ch.Qos(r.prefetch, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	if err := declare(ch, queue); err != nil {
		ch.Close()
		return nil, err
	}

	tag := "atomizer-" + uuid.NewString()
	deliveries, err := ch.Consume(
		queue,
		tag,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}

	r.consMu.Lock()
	r.consumers = append(r.consumers, ch)
	r.consMu.Unlock()

	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				_ = ch.Cancel(tag, false)
				return
			case d, ok := <-deliveries:
				if !ok {
					r.logger.Warn("delivery channel closed", "queue", queue)
					return
				}
				msg := Message{
					Body:         d.Body,
					Redelivered:  d.Redelivered,
					MessageID:    d.MessageId,
					Acknowledger: deliveryAcker{d: d},
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					_ = d.Nack(false, true)
					_ = ch.Cancel(tag, false)
					return
				}
			}
		}
	}()

	r.logger.Info("consuming", "queue", queue, "consumer", tag)
	return out, nil
}

func (r *RabbitMQ) Close() error {
	r.consMu.Lock()
	for _, ch := range r.consumers {
		ch.Close()
	}
	r.consumers = nil
	r.consMu.Unlock()

	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
