package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meikuraledutech/pipecheck"
	"github.com/meikuraledutech/pipecheck/internal/config"
	"github.com/meikuraledutech/pipecheck/internal/logger"
)

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var (
		extended bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyse a pipeline JSON file (or stdin when omitted or \"-\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			g, err := pipecheck.Parse(raw, limitsFrom(*cfg))
			if err != nil {
				return err
			}
			res := pipecheck.Analyze(g, extended)
			logger.Debug("pipeline analysed", "nodes", res.NumNodes, "edges", res.NumEdges, "is_dag", res.IsDAG)
			return writeResult(cmd.OutOrStdout(), res, output)
		},
	}

	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "include node types, sources and sinks")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func readPayload(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}
	return raw, nil
}

func writeResult(w io.Writer, res *pipecheck.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
