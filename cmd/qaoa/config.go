package main

import (
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/qaoa-core/pkg/config"
)

func newConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective experiment configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if path != "" {
				var err error
				if cfg, err = config.LoadConfig(path); err != nil {
					return err
				}
			}
			data, err := config.MarshalYAML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "experiment config YAML (defaults when empty)")
	return cmd
}
