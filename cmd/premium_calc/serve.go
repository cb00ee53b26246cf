package main

import (
	"fmt"

	"github.com/jonathan/premium-calculator/internal/config"
	"github.com/jonathan/premium-calculator/internal/observability"
	"github.com/jonathan/premium-calculator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort        int
	serveBasePremium float64
	serveConfigPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing POST /calculate, GET /health, GET /openapi.json and GET /metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().Float64Var(&serveBasePremium, "base-premium", 0, "Base premium (overrides config and BASE_PREMIUM)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

// resolveServeConfig layers CLI flags over file and environment configuration.
func resolveServeConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("base-premium") {
		cfg.BasePremium = serveBasePremium
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		BasePremium:     cfg.BasePremium,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		Logger:          logger,
		Metrics:         observability.NewMetrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.Int("port", cfg.Port),
	)
	return srv.Start(cmd.Context())
}
