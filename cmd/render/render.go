// Package render implements the "render" subcommand: re-emit a level as
// text, optionally with its current display state.
package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/codec"
	"github.com/hexsolve/hexsolve/pkg/hexerr"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
)

var (
	showDisplay bool
	padding     bool
)

// RenderCmd represents the render command.
var RenderCmd = &cobra.Command{
	Use:     "render [file]",
	Aliases: []string{"r"},
	Short:   "Re-emit a level as text",
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
		text, warning, err := sc.SaveText(codec.EncodeOptions{Padding: padding, Display: showDisplay})
		if err != nil {
			return fmt.Errorf("render %s: %w", args[0], err)
		}
		if warning != hexerr.NoWarning {
			hexlog.Warning("render %s: %s", args[0], warning)
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	RenderCmd.Flags().BoolVar(&showDisplay, "display", false, "render current display state instead of the pristine level")
	RenderCmd.Flags().BoolVar(&padding, "padding", true, "center content within the frame and avoid the UI mask")
}
