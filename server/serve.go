package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/meikuraledutech/pipecheck/internal/config"
	"github.com/meikuraledutech/pipecheck/internal/logger"
	"github.com/meikuraledutech/pipecheck/internal/metrics"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port (env PORT)")
	return cmd
}

// serve runs the service until SIGINT/SIGTERM, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app := newApp(cfg, metrics.New(reg), reg)

	if cfg.MaxNodes <= 0 || cfg.MaxEdges <= 0 {
		logger.Warn("Pipeline size limit disabled, input is bounded by the body limit only",
			"max_nodes", cfg.MaxNodes, "max_edges", cfg.MaxEdges, "body_limit", cfg.BodyLimit)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "max_nodes", cfg.MaxNodes, "max_edges", cfg.MaxEdges)
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		logger.Error("Server stopped", "err", err)
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
		return err
	}
	return nil
}
