package notify

import (
	"context"
	"log/slog"
)

// Noop logs events instead of delivering them. It is used when no NATS URL is
// configured.
type Noop struct {
	logger *slog.Logger
}

func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger.With("component", "noop_notifier")}
}

func (n *Noop) Notify(ctx context.Context, userID, event string, _ any) error {
	n.logger.DebugContext(ctx, "notification skipped", "user_id", userID, "event", event)
	return nil
}
