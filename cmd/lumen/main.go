package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lumen/internal/config"
	"lumen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen language compiler, VM, and toolchain",
	Long:  `Lumen is a dynamically-typed, class-based scripting language with a bytecode VM.`,
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show compile/run phase timings")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
}

// main hands control to cobra. With no subcommand and no file argument
// it falls through to rootCmd's own Run, which starts the REPL or reads
// a script piped on stdin depending on isTerminal.
func main() {
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal,
// used to choose REPL vs. piped-script behavior and to decide color-auto.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag ("auto"|"on"|"off") against whether
// out is a terminal.
func useColor(cmd *cobra.Command, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}

// loadConfig resolves lumen.toml starting from startDir (callers pass the
// script's directory, or the current directory for REPL/stdin sessions).
func loadConfig(startDir string) config.Config {
	cfg, err := config.Load(startDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lumen: %v (using defaults)\n", err)
		return config.Default()
	}
	return cfg
}
