package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/qaoa-core/internal/circuit"
	"github.com/GoSim-25-26J-441/qaoa-core/internal/hamiltonian"
	"github.com/GoSim-25-26J-441/qaoa-core/pkg/graph"
)

func newQASMCmd() *cobra.Command {
	var (
		graphPath     string
		problem       string
		betas, gammas []float64
	)
	cmd := &cobra.Command{
		Use:   "qasm",
		Short: "Print the QAOA ansatz for a graph as OpenQASM 2.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := hamiltonian.ParseProblemKind(problem)
			if err != nil {
				return err
			}
			g, err := graph.Load(graphPath)
			if err != nil {
				return err
			}
			op, err := hamiltonian.Build(g, kind)
			if err != nil {
				return err
			}
			c, err := circuit.Build(betas, gammas, g.NumVertices(), op)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), c.QASM()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "// %d qubits, depth %d, %s\n", c.NumQubits, c.Depth(), c.Summary())
			return nil
		},
	}
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph file")
	cmd.Flags().StringVar(&problem, "problem", "maxcut", "problem: maxcut or mwis")
	cmd.Flags().Float64SliceVar(&betas, "beta", []float64{0.5}, "mixer angles, one per layer")
	cmd.Flags().Float64SliceVar(&gammas, "gamma", []float64{0.5}, "cost angles, one per layer")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
