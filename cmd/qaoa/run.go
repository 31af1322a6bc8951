package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/experiment"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

type runFlags struct {
	configPath string
	graphPath  string
	problem    string
	strategy   string
	depth      int
	outputDir  string
	save       bool
	jsonOutput bool
	logLevel   string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run QAOA on a graph file",
		Long: `Load a graph, search for the QAOA angles that minimise the expected cost,
sample the optimal circuit and print the report. Flags override the
matching keys of the --config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, f)
			if err != nil {
				return err
			}
			logger.SetDefault(logger.NewText(cfg.LogLevel, cmd.ErrOrStderr()))

			g, err := graph.Load(f.graphPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var opts []experiment.Option
			if f.save {
				opts = append(opts, experiment.WithSave())
			}
			out, err := experiment.Run(ctx, cfg, g, opts...)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if f.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			if err := out.Report.WriteText(cmd.OutOrStdout()); err != nil {
				return err
			}
			for _, path := range out.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "experiment config YAML (defaults when empty)")
	cmd.Flags().StringVarP(&f.graphPath, "graph", "g", "", "graph file")
	cmd.Flags().StringVar(&f.problem, "problem", "", "problem: maxcut or mwis")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "search strategy: grid, nelder_mead or hill_climb")
	cmd.Flags().IntVarP(&f.depth, "depth", "p", 0, "number of QAOA layers")
	cmd.Flags().StringVarP(&f.outputDir, "output", "o", "", "output directory for report files")
	cmd.Flags().BoolVar(&f.save, "save", false, "write the report and CSV files to the output directory")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "print the outcome as JSON")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}

func loadRunConfig(cmd *cobra.Command, f runFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(f.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("problem") {
		cfg.Problem = f.problem
	}
	if flags.Changed("strategy") {
		cfg.Search.Strategy = f.strategy
	}
	if flags.Changed("depth") {
		cfg.Search.Depth = f.depth
	}
	if flags.Changed("output") {
		cfg.Output.Dir = f.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
