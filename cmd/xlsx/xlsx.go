// Package xlsx implements the "xlsx" subcommand: export a level's current
// display state as a color-coded .xlsx workbook.
package xlsx

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
	"github.com/hexsolve/hexsolve/pkg/hexxlsx"
)

var outPath string

// XlsxCmd represents the xlsx command.
var XlsxCmd = &cobra.Command{
	Use:   "xlsx [file]",
	Short: "Export a level's current display state as an .xlsx workbook",
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

		book, err := hexxlsx.Export(sc.Grid())
		if err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}

		dest := outPath
		if dest == "" {
			dest = strings.TrimSuffix(args[0], ".hexcells") + ".xlsx"
		}
		if err := os.WriteFile(dest, book, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		hexlog.Info("wrote %s", dest)
		return nil
	},
}

func init() {
	XlsxCmd.Flags().StringVarP(&outPath, "out", "o", "", "output .xlsx path (default: input path with .xlsx extension)")
}
