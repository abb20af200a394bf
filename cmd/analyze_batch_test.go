package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jski/python-container-builder/internal/dataset"
)

func TestAnalyzeBatch_OutputDirAndCollisions(t *testing.T) {
	home := isolateHome(t)

	// Two files with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	csv := "col1,col2\nA,1\nB,2\nC,3\n"
	writeCSV(t, d1, "metrics.csv", csv)
	writeCSV(t, d2, "metrics.csv", csv)
	outDir := filepath.Join(home, "reports")

	out := runCmd(t, "analyze-batch", filepath.Join(home, "d*", "metrics.csv"), "--output-dir", outDir)
	if !strings.Contains(out, "[1/2] Processing metrics.csv...") || !strings.Contains(out, "[2/2] Processing metrics.csv...") {
		t.Fatalf("missing progress lines:\n%s", out)
	}

	b1 := filepath.Join(outDir, "metrics.report.txt")
	b2 := filepath.Join(outDir, "metrics__2.report.txt")
	for _, p := range []string{b1, b2} {
		body, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("missing report %s: %v", p, err)
		}
		if !strings.Contains(string(body), "  Types: col1 (text), col2 (numeric)") {
			t.Fatalf("unexpected report in %s:\n%s", p, body)
		}
	}
}

func TestAnalyzeBatch_StopsOnFirstFailure(t *testing.T) {
	home := isolateHome(t)
	bad := writeCSV(t, home, "a_bad.csv", "a,b\n1,2,3\n")
	good := writeCSV(t, home, "b_good.csv", "a\n1\n")

	out, err := execute(t, "analyze-batch", bad, good)
	if !errors.Is(err, dataset.ErrSchemaMismatch) {
		t.Fatalf("error = %v, want schema mismatch", err)
	}
	if strings.Contains(out, "b_good.csv") {
		t.Fatalf("batch should stop at the first failure:\n%s", out)
	}
}

func TestAnalyzeBatch_KeepGoing(t *testing.T) {
	home := isolateHome(t)
	bad := writeCSV(t, home, "a_bad.csv", "a,b\n1,2,3\n")
	good := writeCSV(t, home, "b_good.csv", "a\n1\n")

	out, err := execute(t, "analyze-batch", bad, good, "--keep-going", "--quiet")
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !errors.Is(err, dataset.ErrSchemaMismatch) || !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Processing") {
		t.Fatalf("--quiet should suppress progress:\n%s", out)
	}
	if !strings.Contains(out, "Source: b_good.csv") {
		t.Fatalf("good file should still be reported:\n%s", out)
	}
}
