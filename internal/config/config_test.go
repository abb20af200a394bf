package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jski/python-container-builder/internal/dataset"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.CustomDataPath != "/app/data.csv" || c.DefaultDataPath != "/app/sample_data.csv" {
		t.Fatalf("data paths = %q, %q", c.CustomDataPath, c.DefaultDataPath)
	}
	if c.PreviewRows != 5 {
		t.Fatalf("preview_rows = %d, want 5", c.PreviewRows)
	}
	if len(c.Percentiles) != 3 || c.Percentiles[0] != 25 || c.Percentiles[2] != 75 {
		t.Fatalf("percentiles = %v", c.Percentiles)
	}
	if len(c.MissingValues) != len(dataset.DefaultMissingValues) {
		t.Fatalf("missing_values = %v", c.MissingValues)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("log_level = %q", c.LogLevel)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	c := Default()
	c.Delimiter = ";"
	c.PreviewRows = 3
	c.MissingValues = []string{"?", "-"}
	c.Correlations = true
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Delimiter != ";" || got.PreviewRows != 3 || !got.Correlations {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if len(got.MissingValues) != 2 || got.MissingValues[0] != "?" {
		t.Fatalf("missing_values = %v", got.MissingValues)
	}
}

func TestSaveDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c := Default()
	c.PreviewRows = 9
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".dsreport", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PreviewRows != 9 {
		t.Fatalf("preview_rows = %d, want 9", got.PreviewRows)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DSREPORT_PREVIEW_ROWS", "12")
	t.Setenv("DSREPORT_CUSTOM_DATA_PATH", "/tmp/custom.csv")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.PreviewRows != 12 {
		t.Fatalf("preview_rows = %d, want 12", c.PreviewRows)
	}
	if c.CustomDataPath != "/tmp/custom.csv" {
		t.Fatalf("custom_data_path = %q", c.CustomDataPath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadOptions(t *testing.T) {
	c := Default()
	c.Delimiter = "tab"
	c.SheetName = "Data"
	opt, err := c.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opt.Delimiter != '\t' || opt.SheetName != "Data" || opt.SheetIndex != 1 {
		t.Fatalf("options = %+v", opt)
	}

	c.Delimiter = "::"
	if _, err := c.LoadOptions(); err == nil {
		t.Fatal("expected error for unsupported delimiter")
	}
}
