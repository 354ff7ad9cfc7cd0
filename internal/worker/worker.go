package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"atomizer/internal/queue"
)

// ErrPoison marks a message that can never be processed.
var ErrPoison = errors.New("poison message")

var validate = validator.New()

type Consumer interface {
	Consume(ctx context.Context, queue string) (<-chan queue.Message, error)
}

// Stage binds a queue to its handler.
type Stage struct {
	Name        string
	Queue       string
	Timeout     time.Duration
	Concurrency int
	handle      func(ctx context.Context, body []byte) error
}

// NewStage decodes each message body into T and validates it before calling
// handler. Decode and validation failures are reported as ErrPoison.
func NewStage[T any](name, queueName string, timeout time.Duration, concurrency int, handler func(context.Context, T) error) Stage {
	return Stage{
		Name:        name,
		Queue:       queueName,
		Timeout:     timeout,
		Concurrency: concurrency,
		handle: func(ctx context.Context, body []byte) error {
			var payload T
			if err := json.Unmarshal(body, &payload); err != nil {
				return fmt.Errorf("%w: decode: %v", ErrPoison, err)
			}
			if err := validate.Struct(payload); err != nil {
				return fmt.Errorf("%w: validate: %v", ErrPoison, err)
			}
			return handler(ctx, payload)
		},
	}
}

type Runner struct {
	consumer Consumer
	stages   []Stage
	logger   *slog.Logger
}

func NewRunner(consumer Consumer, logger *slog.Logger, stages ...Stage) *Runner {
	return &Runner{
		consumer: consumer,
		stages:   stages,
		logger:   logger.With("component", "worker"),
	}
}

// Run consumes every stage concurrently until ctx is done, a consumer fails to
// start, or a delivery stream ends while ctx is still live. Each worker gets
// its own consumer so the broker keeps one prefetch window per worker.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	for _, stage := range r.stages {
		stage := stage
		workers := stage.Concurrency
		if workers <= 0 {
			workers = 1
		}

		for i := 0; i < workers; i++ {
			msgs, err := r.consumer.Consume(gctx, stage.Queue)
			if err != nil {
				cancel()
				_ = g.Wait()
				return fmt.Errorf("consume %s: %w", stage.Queue, err)
			}

			g.Go(func() error {
				for msg := range msgs {
					r.process(gctx, stage, msg)
				}
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("consumer for %s stopped", stage.Queue)
			})
		}

		r.logger.Info("stage started", "stage", stage.Name, "queue", stage.Queue, "workers", workers)
	}

	return g.Wait()
}

// process runs one message under the stage timeout and settles it:
// success and poison messages are acked, failures during shutdown are
// requeued, and other failures are requeued once then rejected.
func (r *Runner) process(ctx context.Context, stage Stage, msg queue.Message) {
	logger := r.logger.With("stage", stage.Name, "message_id", msg.MessageID)
	start := time.Now()

	var (
		hctx   context.Context
		cancel context.CancelFunc
	)
	if stage.Timeout > 0 {
		hctx, cancel = context.WithTimeout(ctx, stage.Timeout)
	} else {
		hctx, cancel = context.WithCancel(ctx)
	}
	err := stage.handle(hctx, msg.Body)
	cancel()

	var settleErr error
	switch {
	case err == nil:
		logger.Debug("message handled", "duration", time.Since(start))
		settleErr = msg.Ack()
	case errors.Is(err, ErrPoison):
		logger.Warn("dropping invalid message", "error", err)
		settleErr = msg.Ack()
	case ctx.Err() != nil:
		logger.Info("shutting down, requeueing message", "error", err)
		settleErr = msg.Nack(true)
	case msg.Redelivered:
		logger.Error("message failed again, rejecting", "error", err)
		settleErr = msg.Nack(false)
	default:
		logger.Warn("message failed, requeueing", "error", err)
		settleErr = msg.Nack(true)
	}

	if settleErr != nil {
		logger.Error("settle message", "error", settleErr)
	}
}
