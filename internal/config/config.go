// Package config loads the optional lumen.toml project configuration:
// VM/GC tunables and REPL/CLI preferences, grounded on the teacher's
// internal/project manifest loader (toml.DecodeFile + meta.IsDefined).
// Absence of the file is not an error — defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// VM holds bytecode-execution tunables.
type VM struct {
	StackFrames int `toml:"stack_frames"`
}

// GC holds garbage-collector tunables.
type GC struct {
	HeapGrowFactor float64 `toml:"heap_grow_factor"`
	Stress         bool    `toml:"stress"`
}

// REPL holds interactive-shell preferences.
type REPL struct {
	HistoryFile string `toml:"history_file"`
}

// CLI holds general command-line presentation preferences.
type CLI struct {
	Color string `toml:"color"` // "auto", "always", "never"
}

// Config is the full decoded shape of a lumen.toml file.
type Config struct {
	VM   VM   `toml:"vm"`
	GC   GC   `toml:"gc"`
	REPL REPL `toml:"repl"`
	CLI  CLI  `toml:"cli"`
}

// Default returns the configuration used when no lumen.toml is found.
func Default() Config {
	return Config{
		VM:   VM{StackFrames: 64},
		GC:   GC{HeapGrowFactor: 2.0, Stress: false},
		REPL: REPL{HistoryFile: ""},
		CLI:  CLI{Color: "auto"},
	}
}

const fileName = "lumen.toml"

// Load walks upward from startDir looking for lumen.toml, the same
// directory-search the teacher's findSurgeToml performs, and merges
// whatever sections are present over Default(). A missing file is not
// an error.
func Load(startDir string) (Config, error) {
	cfg := Default()

	path, ok, err := find(startDir)
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, nil
	}

	var decoded Config
	meta, err := toml.DecodeFile(path, &decoded)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("vm", "stack_frames") {
		cfg.VM.StackFrames = decoded.VM.StackFrames
	}
	if meta.IsDefined("gc", "heap_grow_factor") {
		cfg.GC.HeapGrowFactor = decoded.GC.HeapGrowFactor
	}
	if meta.IsDefined("gc", "stress") {
		cfg.GC.Stress = decoded.GC.Stress
	}
	if meta.IsDefined("repl", "history_file") {
		cfg.REPL.HistoryFile = decoded.REPL.HistoryFile
	}
	if meta.IsDefined("cli", "color") {
		cfg.CLI.Color = decoded.CLI.Color
	}
	return cfg, nil
}

// find walks from startDir up to the filesystem root looking for
// lumen.toml, returning (path, true, nil) on the first match and
// (_, false, nil) if none is found anywhere above startDir.
func find(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
