package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	godotenv "github.com/joho/godotenv"
	prometheus "github.com/prometheus/client_golang/prometheus"
	expfmt "github.com/prometheus/common/expfmt"
	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"

	config "github.com/inference-gateway/a2a-conformance/config"
	conformance "github.com/inference-gateway/a2a-conformance/conformance"
	otel "github.com/inference-gateway/a2a-conformance/otel"
)

const appName = "a2acheck"

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

// errNotConformant is returned after the verdict has already been printed
var errNotConformant = errors.New("input is not conformant")

var (
	envFile     string
	dumpMetrics bool

	cfg       *config.Config
	logger    *zap.Logger
	registry  *prometheus.Registry
	telemetry otel.Telemetry
)

var rootCmd = &cobra.Command{
	Use:               appName,
	Short:             "a2acheck - A2A protocol conformance checker",
	Long:              "a2acheck validates A2A agent cards, JSON-RPC requests, event streams and task state transitions.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree and flushes metrics and logs afterwards
func Execute() error {
	err := rootCmd.Execute()
	if finishErr := finish(); finishErr != nil && err == nil {
		err = finishErr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "dump prometheus metrics to stderr on exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(schemaCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of a2acheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
	},
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var err error
	cfg, err = config.Load(cmd.Context(), &config.Config{AppName: appName, AppVersion: version})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.TelemetryConfig.Enable || dumpMetrics {
		registry = prometheus.NewRegistry()
		telemetry, err = otel.NewTelemetry(cfg, logger, registry)
		if err != nil {
			logger.Error("failed to initialize telemetry", zap.Error(err))
			return err
		}
	}

	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.Bool("telemetry", telemetry != nil))
	return nil
}

// newChecker builds a checker from the loaded configuration
func newChecker(opts ...conformance.CheckerOption) (*conformance.DefaultChecker, error) {
	if telemetry != nil {
		opts = append(opts, conformance.WithTelemetry(telemetry))
	}
	return conformance.NewDefaultChecker(cfg, logger, opts...)
}

func finish() error {
	if logger == nil {
		return nil
	}
	defer func() { _ = logger.Sync() }()

	if dumpMetrics && registry != nil {
		families, err := registry.Gather()
		if err != nil {
			logger.Error("failed to gather metrics", zap.Error(err))
			return err
		}
		for _, family := range families {
			if _, err := expfmt.MetricFamilyToText(os.Stderr, family); err != nil {
				logger.Error("failed to write metrics", zap.Error(err))
				return err
			}
		}
	}

	if telemetry != nil {
		if err := telemetry.ShutDown(context.Background()); err != nil {
			logger.Error("failed to shut down telemetry", zap.Error(err))
			return err
		}
	}
	return nil
}
