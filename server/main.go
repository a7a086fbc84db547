package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/meikuraledutech/pipecheck/internal/config"
	"github.com/meikuraledutech/pipecheck/internal/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Fatal("Command failed", "err", err)
	}
}

// newRootCmd builds the command tree. Running the root without a
// subcommand starts the HTTP service.
func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "pipecheck",
		Short:         "Validate pipeline graphs: counts, DAG status, sources and sinks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Params{Debug: cfg.Debug, Output: cmd.ErrOrStderr()})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging (env DEBUG)")
	flags.IntVar(&cfg.MaxNodes, "max-nodes", cfg.MaxNodes, "reject pipelines with more nodes, 0 for no limit (env MAX_NODES)")
	flags.IntVar(&cfg.MaxEdges, "max-edges", cfg.MaxEdges, "reject pipelines with more edges, 0 for no limit (env MAX_EDGES)")
	root.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port (env PORT)")

	root.AddCommand(newServeCmd(&cfg), newAnalyzeCmd(&cfg))
	return root
}
