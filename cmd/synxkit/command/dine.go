package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/llxisdsh/synxkit/dining"
)

var errNonPositive = errors.New("workers, iterations and actors must be positive")

func (cl *Commandline) dineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dine",
		Short: "Run the dining philosophers around a central arbitrator",
		Long: `Run the dining philosophers around a central arbitrator.

Without --meals or --duration the table runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actors := cl.v.GetInt("actors")
			if actors < 2 {
				return fmt.Errorf("%w: need at least 2 actors, got %d", errNonPositive, actors)
			}

			reg := prometheus.NewRegistry()
			m, err := dining.NewMetrics(reg)
			if err != nil {
				return err
			}
			t := dining.NewTable(actors,
				dining.WithThink(dining.Span{Min: cl.v.GetDuration("think-min"), Max: cl.v.GetDuration("think-max")}),
				dining.WithEat(dining.Span{Min: cl.v.GetDuration("eat-min"), Max: cl.v.GetDuration("eat-max")}),
				dining.WithMeals(cl.v.GetInt("meals")),
				dining.WithUnitLocks(cl.v.GetBool("unit-locks")),
				dining.WithLogger(cl.logger),
				dining.WithMetrics(m),
			)

			ctx := cmd.Context()
			if d := cl.v.GetDuration("duration"); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			err = t.Run(ctx)
			writeMeals(cmd, t)
			if werr := writeMetrics(cmd, reg); werr != nil {
				return werr
			}
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Int("actors", 5, "number of actors around the table")
	cmd.Flags().Int("meals", 0, "stop each actor after this many meals (0 = unlimited)")
	cmd.Flags().Duration("duration", 0, "stop the table after this long (0 = unlimited)")
	cmd.Flags().Duration("think-min", dining.DefaultSpan.Min, "minimum thinking time")
	cmd.Flags().Duration("think-max", dining.DefaultSpan.Max, "maximum thinking time")
	cmd.Flags().Duration("eat-min", dining.DefaultSpan.Min, "minimum eating time")
	cmd.Flags().Duration("eat-max", dining.DefaultSpan.Max, "maximum eating time")
	cmd.Flags().Bool("unit-locks", true, "also take per-unit mutexes while eating")
	return cmd
}

func writeMeals(cmd *cobra.Command, t *dining.Table) {
	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"actor", "units", "meals"})
	for _, a := range t.Actors() {
		tw.Append([]string{
			strconv.Itoa(a.ID),
			fmt.Sprintf("%d,%d", a.Left, a.Right),
			strconv.FormatUint(t.Meals(a.ID), 10),
		})
	}
	tw.SetAutoFormatHeaders(false)
	tw.Render()
}

// writeMetrics prints the dining instruments gathered from g.
func writeMetrics(cmd *cobra.Command, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"metric", "value"})
	for _, mf := range mfs {
		for _, mt := range mf.GetMetric() {
			switch {
			case mt.GetCounter() != nil:
				label := mf.GetName()
				for _, lp := range mt.GetLabel() {
					label += fmt.Sprintf("{%s=%s}", lp.GetName(), lp.GetValue())
				}
				tw.Append([]string{label, strconv.FormatFloat(mt.GetCounter().GetValue(), 'f', -1, 64)})
			case mt.GetGauge() != nil:
				tw.Append([]string{mf.GetName(), strconv.FormatFloat(mt.GetGauge().GetValue(), 'f', -1, 64)})
			case mt.GetHistogram() != nil:
				h := mt.GetHistogram()
				var mean time.Duration
				if n := h.GetSampleCount(); n > 0 {
					mean = time.Duration(h.GetSampleSum() / float64(n) * float64(time.Second))
				}
				tw.Append([]string{mf.GetName() + "_count", strconv.FormatUint(h.GetSampleCount(), 10)})
				tw.Append([]string{mf.GetName() + "_mean", mean.String()})
			}
		}
	}
	tw.SetAutoFormatHeaders(false)
	tw.Render()
	return nil
}
