package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumen/internal/compiler"
	"lumen/internal/observ"
	"lumen/internal/prof"
	"lumen/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.lum>",
	Short: "Compile and execute a Lumen program",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().Bool("stress-gc", false, "force a collection on every allocation")
	runCmd.Flags().String("dump-heap", "", "write a msgpack heap snapshot to this path after execution")
}

func runExecution(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	stressGC, _ := cmd.Flags().GetBool("stress-gc")
	dumpHeap, _ := cmd.Flags().GetString("dump-heap")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	cpuprofile, _ := cmd.Root().PersistentFlags().GetString("cpuprofile")
	memprofile, _ := cmd.Root().PersistentFlags().GetString("memprofile")

	if cpuprofile != "" {
		if err := prof.StartCPU(cpuprofile); err != nil {
			return fmt.Errorf("starting cpu profile: %w", err)
		}
		defer prof.StopCPU()
	}

	cfg := loadConfig(filepath.Dir(path))

	timer := observ.NewTimer()
	setupIdx := timer.Begin("setup")

	v := vm.New()
	v.Heap().SetGrowFactor(cfg.GC.HeapGrowFactor)
	if stressGC || cfg.GC.Stress {
		v.SetStressGC(true)
	}
	timer.End(setupIdx, "")

	runIdx := timer.Begin("run")
	result := v.Interpret(compiler.Engine{}, string(source))
	timer.End(runIdx, result.String())

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if memprofile != "" {
		if err := prof.WriteMem(memprofile); err != nil {
			return fmt.Errorf("writing heap profile: %w", err)
		}
	}

	if dumpHeap != "" {
		f, err := os.Create(dumpHeap)
		if err != nil {
			return fmt.Errorf("creating heap dump: %w", err)
		}
		dumpErr := v.Heap().DumpHeap(f)
		closeErr := f.Close()
		if dumpErr != nil {
			return fmt.Errorf("writing heap dump: %w", dumpErr)
		}
		if closeErr != nil {
			return fmt.Errorf("closing heap dump: %w", closeErr)
		}
	}

	os.Exit(exitCodeFor(result))
	return nil
}

// exitCodeFor maps an InterpretResult to the process exit code spec §7
// names: 0 on success, 65 on a compile error, 70 on a runtime error.
func exitCodeFor(result vm.InterpretResult) int {
	switch result {
	case vm.ResultCompileError:
		return 65
	case vm.ResultRuntimeError:
		return 70
	default:
		return 0
	}
}
