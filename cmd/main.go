package main

import (
	"fmt"
	"os"
	"time"

	"github.com/farellandr/vakansik/config"
	"github.com/farellandr/vakansik/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vakansik",
		Short:         "Vakansik booking payments service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newReconcileCmd())
	return root
}

// bootstrap loads .env when present, then the environment, then the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return server.Start(cfg, logger)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := config.InitDatabase(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := config.RunMigrations(db); err != nil {
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	}
}

func newReconcileCmd() *cobra.Command {
	var (
		olderThan time.Duration
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Settle pending orders whose webhook never arrived",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !cmd.Flags().Changed("older-than") {
				olderThan = cfg.ReconcileAfter
			}

			app, err := server.NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Payments.Reconcile(cmd.Context(), olderThan, limit)
			if err != nil {
				return err
			}

			logger.Info("Reconciliation finished",
				zap.Int("checked", report.Checked),
				zap.Int("settled", report.Settled),
				zap.Int("failed", report.Failed))
			fmt.Fprintf(cmd.OutOrStdout(), "checked=%d settled=%d failed=%d\n", report.Checked, report.Settled, report.Failed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 15*time.Minute, "only check orders created before now minus this duration")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of orders to check")
	return cmd
}
