package command

import (
	"github.com/spf13/cobra"

	"github.com/llxisdsh/synxkit/bench"
)

func (cl *Commandline) benchCmd() *cobra.Command {
	def := bench.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every primitive under the same workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := bench.Config{
				Workers:    cl.v.GetInt("workers"),
				Iterations: cl.v.GetInt("iterations"),
				Primitives: cl.v.GetStringSlice("primitives"),
				Logger:     cl.logger,
			}
			if cfg.Workers <= 0 || cfg.Iterations <= 0 {
				return errNonPositive
			}
			results, err := bench.Run(cmd.Context(), cfg)
			bench.WriteReport(cmd.OutOrStdout(), results)
			return err
		},
	}
	cmd.Flags().Int("workers", def.Workers, "number of concurrent workers")
	cmd.Flags().Int("iterations", def.Iterations, "iterations per worker")
	cmd.Flags().StringSlice("primitives", def.Primitives, "primitives to measure")
	return cmd
}
