package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"atomizer/internal/ai"
	"atomizer/internal/fetch"
	"atomizer/internal/notify"
	"atomizer/internal/render"
	"atomizer/internal/scheduler"
	"atomizer/internal/service"
	"atomizer/internal/storage/postgres"
	"atomizer/internal/worker"
)

const (
	stageText     = "text"
	stageClips    = "clips"
	stageReformat = "reformat"
)

func newWorkerCommand(a *app) *cobra.Command {
	var (
		stages      []string
		concurrency int
		sweep       bool
	)

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume pipeline queues until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-sigCh:
					a.logger.Info("received shutdown signal", "signal", sig)
					cancel()
				case <-ctx.Done():
				}
			}()

			return a.runWorker(ctx, stages, concurrency, sweep)
		},
	}

	cmd.Flags().StringSliceVar(&stages, "stages", []string{stageText, stageClips, stageReformat}, "stages to run")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "consumers per stage")
	cmd.Flags().BoolVar(&sweep, "sweep", true, "periodically fail stale work")
	return cmd
}

func (a *app) runWorker(ctx context.Context, stages []string, concurrency int, sweep bool) error {
	cfg := a.cfg
	logger := a.logger

	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	q, err := a.openQueue(cfg.RabbitMQ.TextQueue, cfg.RabbitMQ.ClipQueue, cfg.RabbitMQ.ReformatQueue)
	if err != nil {
		return err
	}
	defer q.Close()

	store := postgres.NewContentStore(db)
	txManager := postgres.NewTransactionManager(db)
	plans, closePlans := a.plans(ctx, db)
	defer closePlans()

	notifier, closeNotifier, err := a.notifier()
	if err != nil {
		return err
	}
	defer closeNotifier()

	renderer, err := a.renderer(ctx)
	if err != nil {
		return err
	}

	var runnerStages []worker.Stage
	for _, name := range stages {
		switch name {
		case stageText:
			gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Temperature, logger)
			if err != nil {
				return err
			}
			defer gemini.Close()

			synth := ai.NewSynthesizer(
				gemini,
				ai.NewRepairer(gemini, cfg.Gemini.RepairModel, logger),
				ai.Config{
					Model:         cfg.Gemini.Model,
					PollInterval:  cfg.Gemini.PollInterval,
					MaxUploadWait: cfg.Gemini.MaxUploadWait,
				},
				logger,
			)
			downloader := fetch.NewYTDLP(cfg.Download.YTDLPPath, cfg.Download.SourcesDir, logger)
			text := service.NewTextStage(store, txManager, q, downloader, synth, plans, cfg.RabbitMQ.ClipQueue, cfg.Pipeline, logger)
			runnerStages = append(runnerStages, worker.NewStage(stageText, cfg.RabbitMQ.TextQueue, cfg.Pipeline.TextTimeout, concurrency, text.Handle))

		case stageClips:
			clips := service.NewClipStage(store, renderer, plans, cfg.Pipeline, logger)
			runnerStages = append(runnerStages, worker.NewStage(stageClips, cfg.RabbitMQ.ClipQueue, cfg.Pipeline.ClipTimeout, concurrency, clips.Handle))

		case stageReformat:
			reformat := service.NewReformatStage(store, renderer, plans, notifier, cfg.Pipeline, logger)
			runnerStages = append(runnerStages, worker.NewStage(stageReformat, cfg.RabbitMQ.ReformatQueue, cfg.Pipeline.ReformatTimeout, concurrency, reformat.Handle))

		default:
			return fmt.Errorf("unknown stage %q", name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	runner := worker.NewRunner(q, logger, runnerStages...)
	g.Go(func() error {
		return runner.Run(gctx)
	})

	if sweep {
		sweeper := service.NewSweeper(store, notifier, cfg.Sweeper, cfg.Pipeline, logger)
		sched := scheduler.NewScheduler(sweeper, cfg.Sweeper.Interval, logger)
		g.Go(func() error {
			if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	logger.Info("starting atomizer worker", "stages", stages, "concurrency", concurrency, "sweep", sweep)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("worker stopped")
	return nil
}

func (a *app) notifier() (service.Notifier, func(), error) {
	if a.cfg.NATS.URL == "" {
		return notify.NewNoop(a.logger), func() {}, nil
	}

	n, err := notify.NewNATS(a.cfg.NATS.URL, a.cfg.NATS.SubjectPrefix, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return n, func() { n.Close() }, nil
}

func (a *app) renderer(ctx context.Context) (*render.Engine, error) {
	cfg := a.cfg

	var publisher render.Publisher = render.NewLocalPublisher(cfg.Render.PublicBaseURL)
	if cfg.Storage.Enabled {
		s3, err := render.NewS3Publisher(ctx, render.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			PublicURL: cfg.Storage.PublicURL,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		publisher = s3
	}

	return render.NewEngine(render.NewFFmpeg(cfg.Render.FFmpegPath), publisher, render.Config{
		ClipsDir:      cfg.Render.ClipsDir,
		TempDir:       cfg.Render.TempDir,
		TargetWidth:   cfg.Render.TargetWidth,
		WatermarkText: cfg.Render.WatermarkText,
		Preset:        cfg.Render.Preset,
	}, a.logger), nil
}
