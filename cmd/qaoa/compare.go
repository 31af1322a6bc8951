package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/experiment"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/logger"
)

func newCompareCmd() *cobra.Command {
	var (
		f          runFlags
		strategies []string
		depths     []int
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare search strategies and depths on one graph",
		Long: `Run the angle search once per strategy and depth with the rest of the
configuration unchanged, then rank the results by expected cost.`,
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

			cmp, err := experiment.Compare(ctx, cfg, g, strategies, depths)
			if err != nil {
				return fmt.Errorf("compare failed: %w", err)
			}
			if f.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cmp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEARCH\tCOST\tGAP\tRATIO\tIMPROVEMENT\tEVALUATIONS\tDURATION")
			fmt.Fprintln(w, "------\t----\t---\t-----\t-----------\t-----------\t--------")
			for i, row := range cmp.Rows {
				entry := cmp.Summary.Entries[i]
				ratio := "-"
				if cmp.GroundEnergy != nil {
					ratio = fmt.Sprintf("%.4f", row.ApproximationRatio)
				}
				fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%s\t%.2f%%\t%d\t%s\n",
					row.Label, entry.Cost, entry.Gap, ratio, row.Improvement, entry.Evaluations, entry.Duration)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nBest: %s (cost %.6f)\n", cmp.Summary.BestStrategy, cmp.Summary.BestCost)
			fmt.Fprintf(cmd.OutOrStdout(), "Cheapest: %s\n", cmp.Summary.Cheapest)
			fmt.Fprintf(cmd.OutOrStdout(), "Mean cost: %.6f (std dev %.6f)\n", cmp.Summary.AverageCost, cmp.Summary.CostStdDev)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "experiment config YAML (defaults when empty)")
	cmd.Flags().StringVarP(&f.graphPath, "graph", "g", "", "graph file")
	cmd.Flags().StringVar(&f.problem, "problem", "", "problem: maxcut or mwis")
	cmd.Flags().StringSliceVar(&strategies, "strategies", nil, "strategies to compare (default: the configured strategy)")
	cmd.Flags().IntSliceVar(&depths, "depths", nil, "depths to compare (default: the configured depth)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "print the comparison as JSON")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
