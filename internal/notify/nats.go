package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

type publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the envelope sent to a user's subject.
type Event struct {
	Event     string `json:"event"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// NATS publishes named events to <prefix>.<userID>.
type NATS struct {
	conn   *nats.Conn
	pub    publisher
	prefix string
	logger *slog.Logger
}

func NewNATS(url, prefix string, logger *slog.Logger) (*NATS, error) {
	logger = logger.With("component", "nats_notifier")

	nc, err := nats.Connect(url,
		nats.Name("atomizer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	n := newNATS(nc, prefix, logger)
	n.conn = nc
	return n, nil
}

func newNATS(pub publisher, prefix string, logger *slog.Logger) *NATS {
	return &NATS{pub: pub, prefix: prefix, logger: logger}
}

func (n *NATS) Subject(userID string) string {
	return n.prefix + "." + userID
}

func (n *NATS) Notify(ctx context.Context, userID, event string, payload any) error {
	data, err := json.Marshal(Event{Event: event, Payload: payload, Timestamp: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := n.Subject(userID)
	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	n.logger.DebugContext(ctx, "event sent", "subject", subject, "event", event)
	return nil
}

// Close flushes pending events and closes the connection.
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Drain()
	if err != nil {
		n.conn.Close()
	}
	return err
}
