package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/compiler"
	"lumen/internal/vm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] <file.lum>",
	Short: "Compile a Lumen source file and print its disassembled bytecode",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	v := vm.New()
	fn, errs, ok := compiler.Compile(v, string(source))
	if !ok {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.String())
		}
		os.Exit(65)
	}

	disassembleFunction(fn, fn.String())
	return nil
}

// disassembleFunction prints fn's own chunk, then recurses into every
// nested function found among its constants (§4.5: each function owns
// its own chunk and appears as a constant in its enclosing chunk).
func disassembleFunction(fn *vm.Object, name string) {
	vm.Disassemble(os.Stdout, fn.Chunk, name)
	for _, c := range fn.Chunk.Constants {
		if c.Kind == vm.VKObject && c.Obj.Kind == vm.ObjFunction {
			disassembleFunction(c.Obj, c.Obj.String())
		}
	}
}
