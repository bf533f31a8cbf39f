package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lumen/internal/compiler"
	"lumen/internal/ui"
	"lumen/internal/vm"
)

var benchCmd = &cobra.Command{
	Use:   "bench [flags]",
	Short: "Drive the VM's garbage collector under a synthetic allocation load",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Int("iterations", 200, "number of allocation rounds to run")
	benchCmd.Flags().Int("width", 64, "objects allocated per round")
	benchCmd.Flags().Bool("stress-gc", false, "force a collection on every allocation")
	benchCmd.Flags().Bool("force-gc", false, "force a full collection at the end of every round")
}

// benchSource allocates width class instances per call, each overwriting
// the previous one in its local slot — every instance becomes
// collectible garbage as soon as the next loop iteration runs, which is
// what makes repeated calls a GC stress load.
const benchSource = `
class BenchNode {}
fun churn(width) {
  var i = 0;
  while (i < width) {
    var n = BenchNode();
    i = i + 1;
  }
}
churn(%d);
`

func runBench(cmd *cobra.Command, args []string) error {
	iterations, _ := cmd.Flags().GetInt("iterations")
	width, _ := cmd.Flags().GetInt("width")
	stressGC, _ := cmd.Flags().GetBool("stress-gc")
	forceGC, _ := cmd.Flags().GetBool("force-gc")

	v := vm.New()
	v.SetStressGC(stressGC)

	source := fmt.Sprintf(benchSource, width)

	events := make(chan ui.BenchEvent, 16)
	done := make(chan error, 1)

	go func() {
		prevBytes := v.Heap().BytesAllocated()
		for i := 1; i <= iterations; i++ {
			result := v.Interpret(compiler.Engine{}, source)
			if result != vm.ResultOK {
				done <- fmt.Errorf("bench iteration %d: %s", i, result)
				close(events)
				return
			}
			collected := false
			if forceGC {
				v.Heap().CollectGarbage()
				collected = true
			}
			allocated := v.Heap().BytesAllocated()
			events <- ui.BenchEvent{
				Iteration:      i,
				Total:          iterations,
				BytesAllocated: uint64(allocated),
				NextGC:         uint64(v.Heap().NextGC()),
				Collected:      collected || allocated < prevBytes,
			}
			prevBytes = allocated
		}
		close(events)
		done <- nil
	}()

	model := ui.NewBenchModel("gc stress", iterations, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("bench ui: %w", err)
	}
	return <-done
}
