// Package driver runs internal/compiler over every .lum file in a
// directory with bounded concurrency, for the `check` subcommand. This
// is build-tool concurrency over independent single-file compiles, not
// the language's own execution model — running scripts concurrently
// against a shared VM is explicitly out of scope (spec.md non-goals);
// each file gets its own single-threaded vm.VM used only up to the
// point of compilation, never run.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lumen/internal/compiler"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/vm"
)

// CheckResult is one file's outcome from CheckDir.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	OK     bool
}

// listLumFiles returns a sorted list of every .lum file under dir, for
// deterministic ordering independent of the underlying filesystem's
// directory-walk order.
func listLumFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lum") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir compiles every .lum file under dir with up to jobs
// goroutines (jobs <= 0 picks GOMAXPROCS), collecting each file's
// compile diagnostics into its own Bag capped at maxDiagnostics.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []CheckResult, error) {
	files, err := listLumFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = CheckResult{Path: path, Bag: bag, OK: false}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			v := vm.New()
			_, errs, ok := compiler.Compile(v, string(file.Content))
			for _, e := range errs {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.CompileErrorCode,
					Message:  e.Message,
					Primary:  fileSet.LineSpan(fileID, safeLine(e.Line)),
				})
			}

			results[i] = CheckResult{Path: path, FileID: fileID, Bag: bag, OK: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func safeLine(line int) uint32 {
	if line < 0 {
		return 0
	}
	return uint32(line)
}
