package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qaoa",
		Short: "QAOA for Max-Cut and maximum weighted independent set",
		Long: `qaoa encodes a graph problem as a diagonal cost operator, searches for
QAOA angles on a statevector simulator and decodes the most frequent
measured bitstring.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newGroundStateCmd())
	root.AddCommand(newQASMCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
