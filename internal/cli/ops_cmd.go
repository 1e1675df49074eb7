package cli

import (
	"fmt"
	"strconv"

	"healthymeal/internal/app"
	"healthymeal/internal/cli/formatter"

	"github.com/spf13/cobra"
)

func newMaintainCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Sweep expired plans and repair corrupted ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := a.Maintenance.Run(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Repaired %d plan(s), deleted %d unrecoverable plan(s).\n",
				report.Repaired, report.Deleted)
			return nil
		},
	}
}

func newMetricsCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Inspect generation metrics",
	}
	cmd.AddCommand(newMetricsUsageCmd(a), newMetricsCleanupCmd(a))
	return cmd
}

func newMetricsUsageCmd(a *app.App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show daily generation usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := a.Metrics.GetDailyUsage(cmd.Context(), days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintf(out, "No generations in the last %d day(s).\n", days)
				return nil
			}

			rows := make([][]string, 0, len(usage))
			for _, u := range usage {
				rows = append(rows, []string{
					u.Date,
					strconv.Itoa(u.Runs),
					strconv.Itoa(u.TotalPrompt),
					strconv.Itoa(u.TotalCompletion),
					strconv.Itoa(u.Repaired),
					strconv.Itoa(u.Fallbacks),
				})
			}
			_, err = fmt.Fprint(out, formatter.RenderTable(
				[]string{"DATE", "RUNS", "PROMPT", "COMPLETION", "REPAIRED", "FALLBACK"}, rows))
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of days to include")
	return cmd
}

func newMetricsCleanupCmd(a *app.App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old generation metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Metrics.Cleanup(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %d old metric records.\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "keep records for the last N days")
	return cmd
}

func newHealthCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the generator and report process health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			name := a.GeneratorName()
			if a.Plans.GeneratorAvailable(cmd.Context()) {
				fmt.Fprintf(out, "Generator %s is available.\n", name)
			} else {
				fmt.Fprintf(out, "Generator %s is unavailable; new plans will use the default plan.\n",
					formatter.StyleWarn.Render(name))
			}

			h := a.SysHealth()
			fmt.Fprintf(out, "Memory:     %s\n", h.Memory())
			fmt.Fprintf(out, "GC runs:    %d\n", h.NumGC)
			fmt.Fprintf(out, "Goroutines: %d\n", h.Goroutines)
			fmt.Fprintf(out, "Data:       %s in %s\n", h.DataSize(), h.DataDir)
			return nil
		},
	}
}
