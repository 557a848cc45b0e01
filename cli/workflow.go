package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowgate/flowgate/engine/infra/store"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/flowgate/flowgate/pkg/config"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/spf13/cobra"
)

// WorkflowCmd groups workflow management commands.
func WorkflowCmd() *cobra.Command {
	workflowCmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage workflow definitions",
	}
	workflowCmd.AddCommand(registerCmd())
	return workflowCmd
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <definition.json>",
		Short: "Store a workflow definition, replacing any previous version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), args[0])
		},
	}
}

func runRegister(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read definition file: %w", err)
	}
	var cfg workflow.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to decode definition file: %w", err)
	}
	if cfg.ID == "" {
		return fmt.Errorf("definition in %s has no workflow id", path)
	}

	appCfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(&logger.Config{
		Level:      appCfg.Log.Level,
		JSON:       appCfg.Log.JSON,
		TimeFormat: appCfg.Log.TimeFormat,
	})
	ctx = logger.ContextWithLogger(ctx, log)

	storeCfg := &store.Config{
		ConnString: appCfg.Database.ConnString,
		Host:       appCfg.Database.Host,
		Port:       appCfg.Database.Port,
		User:       appCfg.Database.User,
		Password:   appCfg.Database.Password,
		DBName:     appCfg.Database.Name,
		SSLMode:    appCfg.Database.SSLMode,
	}
	if err := store.Migrate(ctx, storeCfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	db, err := store.NewDB(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx)

	if err := store.NewWorkflowRepo(db.Pool()).Upsert(ctx, &cfg); err != nil {
		return err
	}
	log.Info("Workflow registered", "workflow_id", cfg.ID, "name", cfg.Name)
	return nil
}
