package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lumen/internal/compiler"
	"lumen/internal/repl"
	"lumen/internal/vm"
)

// runRepl implements CLI mode (a): with no file argument, start the
// interactive REPL if stdin is a terminal, or read and run a whole
// script piped on stdin otherwise.
func runRepl(cmd *cobra.Command, args []string) error {
	if isTerminal(os.Stdin) {
		cfg := loadConfig(".")
		model := repl.New(cfg)
		program := tea.NewProgram(model)
		_, err := program.Run()
		return err
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	cfg := loadConfig(".")
	v := vm.New()
	v.Heap().SetGrowFactor(cfg.GC.HeapGrowFactor)
	v.SetStressGC(cfg.GC.Stress)

	result := v.Interpret(compiler.Engine{}, string(source))
	os.Exit(exitCodeFor(result))
	return nil
}
