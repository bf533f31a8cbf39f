package main

import (
	"testing"

	"lumen/internal/vm"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		result vm.InterpretResult
		want   int
	}{
		{vm.ResultOK, 0},
		{vm.ResultCompileError, 65},
		{vm.ResultRuntimeError, 70},
	}
	for _, tc := range cases {
		if got := exitCodeFor(tc.result); got != tc.want {
			t.Fatalf("exitCodeFor(%v) = %d, want %d", tc.result, got, tc.want)
		}
	}
}

func TestUseColorRespectsExplicitFlag(t *testing.T) {
	cmd := rootCmd
	if err := cmd.PersistentFlags().Set("color", "on"); err != nil {
		t.Fatalf("Set(color, on): %v", err)
	}
	defer cmd.PersistentFlags().Set("color", "auto")

	if !useColor(cmd, nil) {
		t.Fatalf("useColor with --color=on = false, want true")
	}

	if err := cmd.PersistentFlags().Set("color", "off"); err != nil {
		t.Fatalf("Set(color, off): %v", err)
	}
	if useColor(cmd, nil) {
		t.Fatalf("useColor with --color=off = true, want false")
	}
}
