// Package cmd wires the hexsolve cobra command tree, ported from the
// teacher's cmd/root.go: a persistent --verbose/--workers/--working-dir
// trio handled in PersistentPreRunE, with every subcommand registered in
// init().
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/cmd/convert"
	"github.com/hexsolve/hexsolve/cmd/load"
	"github.com/hexsolve/hexsolve/cmd/mcp"
	"github.com/hexsolve/hexsolve/cmd/render"
	"github.com/hexsolve/hexsolve/cmd/save"
	"github.com/hexsolve/hexsolve/cmd/solve"
	"github.com/hexsolve/hexsolve/cmd/xlsx"
	"github.com/hexsolve/hexsolve/pkg/hexconfig"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
)

var (
	verbose    bool
	workers    string
	workingDir string

	// WorkersCount is the parsed --workers value, available to subcommands
	// that fan out solver or batch work.
	WorkersCount int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hexsolve",
	Short: "A Hexcells-style puzzle toolkit: load, solve, render, and serve levels",
	Long: `hexsolve loads Hexcells-style levels, derives and checks their hints,
solves them with either the simple arithmetic pass or the two-phase ILP
solver, and renders or exports the result.

It provides commands for:
  - Loading and inspecting level files
  - Solving levels (simple pass or ILP proof search)
  - Rendering levels as text, JSON, or a color-coded .xlsx workbook
  - Saving and restoring in-progress display state
  - Serving the puzzle core over MCP stdio transport`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		hexlog.SetVerbose(verbose)

		count, err := hexconfig.ParseWorkers(workers)
		if err != nil {
			return fmt.Errorf("invalid --workers value: %w", err)
		}
		WorkersCount = count
		hexlog.Debug("workers: %d (from flag: %s)", WorkersCount, workers)

		if workingDir != "" {
			hexlog.Debug("changing working directory to: %s", workingDir)
			if err := os.Chdir(workingDir); err != nil {
				return fmt.Errorf("failed to change working directory: %w", err)
			}
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to run once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVarP(&workers, "workers", "j", "half", "number of concurrent workers (integer, 'half', or 'full')")
	rootCmd.PersistentFlags().StringVarP(&workingDir, "working-dir", "w", "", "working directory for level/save paths (default: current directory)")

	rootCmd.AddCommand(load.LoadCmd)
	rootCmd.AddCommand(solve.SolveCmd)
	rootCmd.AddCommand(render.RenderCmd)
	rootCmd.AddCommand(convert.ConvertCmd)
	rootCmd.AddCommand(save.SaveCmd)
	rootCmd.AddCommand(xlsx.XlsxCmd)
	rootCmd.AddCommand(mcp.McpCmd)
}
