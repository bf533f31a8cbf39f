package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want Default()", cfg)
	}
}

func TestLoadMergesDeclaredSections(t *testing.T) {
	dir := t.TempDir()
	contents := `
[vm]
stack_frames = 128

[gc]
stress = true
`
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VM.StackFrames != 128 {
		t.Errorf("VM.StackFrames = %d, want 128", cfg.VM.StackFrames)
	}
	if !cfg.GC.Stress {
		t.Error("GC.Stress = false, want true")
	}
	// Sections not declared in the file keep Default()'s values.
	if cfg.GC.HeapGrowFactor != Default().GC.HeapGrowFactor {
		t.Errorf("GC.HeapGrowFactor = %v, want default %v", cfg.GC.HeapGrowFactor, Default().GC.HeapGrowFactor)
	}
	if cfg.CLI.Color != Default().CLI.Color {
		t.Errorf("CLI.Color = %q, want default %q", cfg.CLI.Color, Default().CLI.Color)
	}
}

func TestLoadWalksUpToParentDirectory(t *testing.T) {
	root := t.TempDir()
	contents := "[repl]\nhistory_file = \"hist.log\"\n"
	if err := os.WriteFile(filepath.Join(root, fileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.REPL.HistoryFile != "hist.log" {
		t.Errorf("REPL.HistoryFile = %q, want %q", cfg.REPL.HistoryFile, "hist.log")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}
