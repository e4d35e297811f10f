// Package load implements the "load" subcommand: parse a level file and
// print a summary, surfacing any codec warning or error.
package load

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
)

// LoadCmd represents the load command.
var LoadCmd = &cobra.Command{
	Use:     "load [file]",
	Aliases: []string{"l"},
	Short:   "Parse a level file and print a summary",
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
		hexlog.Info("loaded %s: %d entities, %d remaining, %d mistakes",
			args[0], sc.Grid().Len(), sc.Remaining(), sc.Mistakes())
		return nil
	},
}
