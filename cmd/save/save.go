// Package save implements the "save" subcommand: persist a level's
// pristine text and current display state to the savestate store.
package save

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/codec"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
	"github.com/hexsolve/hexsolve/pkg/savestate"
)

var storeDir string

// SaveCmd represents the save command.
var SaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Persist a level's current display state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		sc, err := hexscene.LoadText(string(data))
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		pristineText, _, err := sc.SaveText(codec.EncodeOptions{Padding: false, Display: false})
		if err != nil {
			return fmt.Errorf("render pristine text: %w", err)
		}
		stateText, _, err := sc.SaveText(codec.EncodeOptions{Padding: false, Display: true})
		if err != nil {
			return fmt.Errorf("render display text: %w", err)
		}

		store, err := savestate.Open(storeDir)
		if err != nil {
			return fmt.Errorf("open savestate: %w", err)
		}
		if err := store.Put(pristineText, stateText, sc.Mistakes()); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		hexlog.Info("saved %s (mistakes=%d) to %s", args[0], sc.Mistakes(), storeDir)
		return nil
	},
}

func init() {
	home, _ := os.UserHomeDir()
	SaveCmd.Flags().StringVar(&storeDir, "store", filepath.Join(home, ".hexsolve", "saves"), "directory holding saved display states")
}
