package cli

import (
	"healthymeal/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	userID  int64
	verbose bool
}

// NewRootCmd creates the top-level "healthymeal" command. level is raised to
// debug when --verbose is given.
func NewRootCmd(a *app.App, level zap.AtomicLevel) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "healthymeal",
		Short:         "Meal plan generation and recipe collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				level.SetLevel(zapcore.DebugLevel)
			}
		},
	}

	root.PersistentFlags().Int64Var(&opts.userID, "user", a.UserID, "owner id the command acts on")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPlanCmd(a, opts),
		newRecipeCmd(a, opts),
		newMaintainCmd(a),
		newMetricsCmd(a),
		newHealthCmd(a),
	)

	return root
}
