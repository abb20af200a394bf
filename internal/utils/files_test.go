package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jski/python-container-builder/internal/utils"
)

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "data.csv")
	sample := filepath.Join(dir, "sample_data.csv")
	if err := os.WriteFile(sample, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	got, idx := utils.FirstExisting(custom, sample)
	if got != sample || idx != 1 {
		t.Fatalf("FirstExisting = %q, %d; want sample, 1", got, idx)
	}

	if err := os.WriteFile(custom, []byte("a\n2\n"), 0o644); err != nil {
		t.Fatalf("write custom: %v", err)
	}
	got, idx = utils.FirstExisting(custom, sample)
	if got != custom || idx != 0 {
		t.Fatalf("FirstExisting = %q, %d; want custom, 0", got, idx)
	}
}

func TestFirstExistingNoneFound(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.csv")
	got, idx := utils.FirstExisting("", dir, missing)
	if got != missing || idx != -1 {
		t.Fatalf("FirstExisting = %q, %d; want %q, -1", got, idx, missing)
	}
}

func TestSafeWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.txt")
	if err := utils.SafeWriteFile(path, []byte("hello")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content = %q", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
