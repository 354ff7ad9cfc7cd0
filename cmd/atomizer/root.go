package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"atomizer/internal/config"
	"atomizer/internal/queue"
	"atomizer/internal/service"
	"atomizer/internal/storage/postgres"
	"atomizer/internal/storage/redis"
)

// app carries state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "atomizer",
		Short:         "Turn long-form video into articles, posts and short clips",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to config file")

	rootCmd.AddCommand(newWorkerCommand(a))
	rootCmd.AddCommand(newSubmitCommand(a))
	rootCmd.AddCommand(newReformatCommand(a))
	rootCmd.AddCommand(newStatusCommand(a))
	rootCmd.AddCommand(newMigrateCommand(a))

	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.logger = setupLogger(cfg.Log)
	return nil
}

func (a *app) openDB(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", a.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.logger.Debug("connected to database", "host", a.cfg.Database.Host, "dbname", a.cfg.Database.DBName)
	return db, nil
}

func (a *app) openQueue(queues ...string) (*queue.RabbitMQ, error) {
	return queue.NewRabbitMQ(queue.Config{
		URL:      a.cfg.RabbitMQ.URL,
		Queues:   queues,
		Prefetch: a.cfg.RabbitMQ.Prefetch,
	}, a.logger)
}

// plans returns the plan-tier lookup, cached in Redis when it is configured
// and reachable. The returned func releases the Redis client.
func (a *app) plans(ctx context.Context, db *sqlx.DB) (service.PlanLookup, func()) {
	store := postgres.NewPlanStore(db)
	if a.cfg.Redis.URL == "" {
		return store, func() {}
	}

	rdb, err := redis.Connect(ctx, a.cfg.Redis.URL)
	if err != nil {
		a.logger.Warn("redis unavailable, reading plans from database", "error", err)
		return store, func() {}
	}
	return redis.NewPlanCache(rdb, store, a.cfg.Redis.PlanTTL, a.logger), func() { rdb.Close() }
}

func (a *app) submitter(ctx context.Context, db *sqlx.DB, q service.Queue) (*service.Submitter, func()) {
	plans, closePlans := a.plans(ctx, db)
	return service.NewSubmitter(
		postgres.NewContentStore(db),
		q,
		plans,
		a.cfg.RabbitMQ.TextQueue,
		a.cfg.RabbitMQ.ReformatQueue,
		a.logger,
	), closePlans
}
