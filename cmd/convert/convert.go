// Package convert implements the "convert" subcommand: translate a level
// between the text format and the optional JSON interchange dialect.
package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/codec"
)

var toJSON bool

// ConvertCmd represents the convert command.
var ConvertCmd = &cobra.Command{
	Use:     "convert [file]",
	Aliases: []string{"c"},
	Short:   "Convert a level between the text format and the JSON dialect",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		if toJSON {
			doc, err := codec.Decode(string(data))
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			dialect, err := codec.EncodeDialect(doc)
			if err != nil {
				return fmt.Errorf("encode dialect: %w", err)
			}
			out, err := json.MarshalIndent(dialect, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal dialect: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		doc, err := codec.DecodeDialect(data)
		if err != nil {
			return fmt.Errorf("decode dialect %s: %w", args[0], err)
		}
		text, _, err := codec.Encode(doc, codec.EncodeOptions{Padding: true, Display: true})
		if err != nil {
			return fmt.Errorf("encode text: %w", err)
		}
		fmt.Println(strings.TrimRight(text, "\n"))
		return nil
	},
}

func init() {
	ConvertCmd.Flags().BoolVar(&toJSON, "to-json", false, "convert text -> JSON (default: JSON -> text)")
}
