package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// FirstExisting returns the first candidate that exists as a regular file
// and its position in candidates. Empty candidates are skipped. If none
// exists it returns the last non-empty candidate with index -1, so the
// caller's load reports a meaningful path.
func FirstExisting(candidates ...string) (string, int) {
	last := ""
	for i, c := range candidates {
		if c == "" {
			continue
		}
		last = c
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, i
		}
	}
	return last, -1
}
