package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <dir>",
	Short: "Compile-check every .lum file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max concurrent compiles (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := args[0]
	jobs, _ := cmd.Flags().GetInt("jobs")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	fileSet, results, err := driver.CheckDir(cmd.Context(), dir, maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	colorize := useColor(cmd, os.Stdout)
	color.NoColor = !colorize

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
		items := r.Bag.Items()
		if len(items) == 0 {
			continue
		}
		ptrs := make([]*diag.Diagnostic, len(items))
		for i := range items {
			ptrs[i] = &items[i]
		}
		fmt.Println(diag.FormatShortDiagnostics(ptrs, fileSet, false))
	}

	fmt.Printf("%d file(s) checked, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
