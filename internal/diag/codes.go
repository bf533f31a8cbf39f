package diag

import "fmt"

// Code is a compact numeric diagnostic identifier with a stable string
// form, used by the batch `check` subcommand to report findings across
// many files deterministically.
//
// Lumen's single-file compiler (internal/compiler) does its own
// panic-mode error collection as free-text CompileError values (spec
// §7) rather than through this package — see SPEC_FULL.md §2. The
// codes below exist only for the multi-file checker, which re-files
// those CompileErrors (scanner Error tokens included, since the compiler
// reports them as CompileErrors) under CompileErrorCode, and unreadable
// files under IOLoadError, as Diagnostics so they can be sorted, deduplicated, and golden-tested
// the way the teacher's diag package does for its own pipeline.
type Code uint16

const (
	UnknownCode Code = 0

	// LexError marks a scanner-level Error token (spec §6). The batch
	// checker does not emit it: scanner errors reach it as CompileErrors.
	LexError Code = 1000

	// CompileErrorCode marks a compiler panic-mode error (spec §7).
	CompileErrorCode Code = 2000

	// IOLoadError marks a file that could not be read from disk.
	IOLoadError Code = 4000
)

var codeDescription = map[Code]string{
	UnknownCode:      "unknown error",
	LexError:         "lexical error",
	CompileErrorCode: "compile error",
	IOLoadError:      "failed to load file",
}

// ID returns the stable, category-prefixed string form of c, e.g.
// "LEX1000" or "SYN2000".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	default:
		return fmt.Sprintf("UNK%04d", ic)
	}
}

// Title returns a short human-readable description of c's category.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
