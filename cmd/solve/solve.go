// Package solve implements the "solve" subcommand: drive the simple
// solver to a fixed point, then fall back to the ILP solver for any
// remaining deductions, logging how many cells each solver forced.
package solve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
	"github.com/hexsolve/hexsolve/pkg/ui"
)

var useILP bool

// SolveCmd represents the solve command.
var SolveCmd = &cobra.Command{
	Use:     "solve [file]",
	Aliases: []string{"s"},
	Short:   "Run the solver against a level and report forced cells",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		sc, err := hexscene.LoadText(string(data))
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		forced := 0
		for {
			kinds := sc.SolveStep()
			if len(kinds) == 0 {
				break
			}
			forced += len(kinds)
		}
		hexlog.Info("simple solver forced %d cells; %d remaining", forced, sc.Remaining())

		if useILP && !sc.SolveComplete() {
			spin := ui.NewSpinner("running ILP proof search")
			spin.Start()
			conclusions, err := sc.SolveILP(nil)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("ilp solve: %w", err)
			}
			hexlog.Info("ILP solver forced %d additional cells; %d remaining", len(conclusions), sc.Remaining())
		}

		if sc.SolveComplete() {
			hexlog.Info("level fully solved (%d mistakes)", sc.Mistakes())
		}
		return nil
	},
}

func init() {
	SolveCmd.Flags().BoolVar(&useILP, "ilp", false, "fall back to the ILP solver when the simple solver stalls")
}
