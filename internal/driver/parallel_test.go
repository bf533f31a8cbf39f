package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckDirReportsCleanAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.lum", `print 1 + 2;`)
	writeFile(t, dir, "bad.lum", `var;`)
	writeFile(t, dir, "ignored.txt", `not lumen source`)

	_, results, err := CheckDir(context.Background(), dir, 100, 2)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	byPath := make(map[string]CheckResult, len(results))
	for _, r := range results {
		byPath[filepath.Base(r.Path)] = r
	}

	good, ok := byPath["good.lum"]
	if !ok {
		t.Fatal("missing result for good.lum")
	}
	if !good.OK || good.Bag.HasErrors() {
		t.Errorf("good.lum: OK = %v, HasErrors = %v, want OK and no errors", good.OK, good.Bag.HasErrors())
	}

	bad, ok := byPath["bad.lum"]
	if !ok {
		t.Fatal("missing result for bad.lum")
	}
	if bad.OK || !bad.Bag.HasErrors() {
		t.Errorf("bad.lum: OK = %v, HasErrors = %v, want compile failure", bad.OK, bad.Bag.HasErrors())
	}
}

func TestCheckDirEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	_, results, err := CheckDir(context.Background(), dir, 100, 0)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestCheckDirDeterministicOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.lum", `print 1;`)
	writeFile(t, dir, "a.lum", `print 2;`)
	writeFile(t, dir, "b.lum", `print 3;`)

	_, results, err := CheckDir(context.Background(), dir, 100, 4)
	if err != nil {
		t.Fatalf("CheckDir() error = %v", err)
	}
	var order []string
	for _, r := range results {
		order = append(order, filepath.Base(r.Path))
	}
	want := []string{"a.lum", "b.lum", "c.lum"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("order[%d] = %q, want %q (order = %v)", i, order[i], name, order)
		}
	}
}
