package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_SetAndShow(t *testing.T) {
	home := isolateHome(t)

	runCmd(t, "config", "set", "preview_rows", "3")
	runCmd(t, "config", "set", "delimiter", "tab")
	runCmd(t, "config", "set", "percentiles", "10, 90")
	if _, err := os.Stat(filepath.Join(home, ".dsreport", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}

	out := runCmd(t, "config", "show")
	for _, want := range []string{"preview_rows: 3", "delimiter: tab", "percentiles: 10,90"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfig_SetRejectsBadValues(t *testing.T) {
	isolateHome(t)
	cases := [][]string{
		{"config", "set", "preview_rows", "zero"},
		{"config", "set", "delimiter", "::"},
		{"config", "set", "percentiles", "150"},
		{"config", "set", "log_level", "loud"},
		{"config", "set", "nope", "1"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestConfig_AppliedToAnalyze(t *testing.T) {
	home := isolateHome(t)
	p := writeCSV(t, home, "rows.csv", "v\n1\n2\n3\n4\n")

	runCmd(t, "config", "set", "preview_rows", "2")
	out := runCmd(t, "analyze", p)
	if !strings.Contains(out, "First 2 rows:") {
		t.Fatalf("config preview_rows not applied:\n%s", out)
	}
	out = runCmd(t, "analyze", p, "--preview-rows", "4")
	if !strings.Contains(out, "First 4 rows:") {
		t.Fatalf("flag should override config:\n%s", out)
	}
}
