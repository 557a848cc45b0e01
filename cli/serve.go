package cli

import (
	"context"
	"fmt"

	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/flowgate/flowgate/engine/infra/server"
	"github.com/flowgate/flowgate/engine/infra/store"
	"github.com/flowgate/flowgate/engine/worker"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/flowgate/flowgate/pkg/config"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/spf13/cobra"
)

// ServeCmd starts the bridge server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the invocation bridge server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(&logger.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		AddSource:  cfg.Log.AddSource,
		TimeFormat: cfg.Log.TimeFormat,
	})
	ctx = logger.ContextWithLogger(ctx, log)

	storeCfg := &store.Config{
		ConnString: cfg.Database.ConnString,
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.Database.Password,
		DBName:     cfg.Database.Name,
		SSLMode:    cfg.Database.SSLMode,
	}
	if err := store.Migrate(ctx, storeCfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	db, err := store.NewDB(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx)

	temporalClient, err := worker.NewClient(ctx, &worker.TemporalConfig{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		TaskQueue: cfg.Temporal.TaskQueue,
	})
	if err != nil {
		return err
	}
	defer temporalClient.Close()

	runner := worker.NewRunner(temporalClient)
	svc := bridge.NewService(
		store.NewWorkflowRepo(db.Pool()),
		bridge.StartCheckerFunc(
			func(_ context.Context, _ string, wf *workflow.Config) (bool, error) {
				return wf.CanRunManually(), nil
			},
		),
		runner,
		runner,
		store.NewExecutionRepo(db.Pool()),
	)

	srv := server.NewServer(&server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, svc, log)
	return srv.Run(ctx)
}
