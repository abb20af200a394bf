package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jski/python-container-builder/internal/dataset"
)

const dirName = ".dsreport"

// Global configuration structure.
type Global struct {
	// Input resolution when no path is given on the command line.
	CustomDataPath  string `mapstructure:"custom_data_path" yaml:"custom_data_path"`
	DefaultDataPath string `mapstructure:"default_data_path" yaml:"default_data_path"`

	// Parsing
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	MissingValues []string `mapstructure:"missing_values" yaml:"missing_values"`
	SheetName     string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex    int      `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Report
	PreviewRows  int       `mapstructure:"preview_rows" yaml:"preview_rows"`
	Percentiles  []float64 `mapstructure:"percentiles" yaml:"percentiles"`
	Correlations bool      `mapstructure:"correlations" yaml:"correlations"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dsreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a local .env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DSREPORT")
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// only an explicitly requested file must exist
		if cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("custom_data_path", "/app/data.csv")
	v.SetDefault("default_data_path", "/app/sample_data.csv")
	v.SetDefault("delimiter", "")
	v.SetDefault("missing_values", dataset.DefaultMissingValues)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("percentiles", []float64{25, 50, 75})
	v.SetDefault("correlations", false)
	v.SetDefault("log_level", "warn")
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// ParseDelimiter maps a user-facing delimiter name to a rune. An empty
// value means auto-detect and returns 0.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab' | '|')", s)
}

// LoadOptions converts the parsing settings for the dataset loader.
func (c *Global) LoadOptions() (dataset.LoadOptions, error) {
	delim, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return dataset.LoadOptions{}, err
	}
	return dataset.LoadOptions{
		Delimiter:     delim,
		MissingValues: c.MissingValues,
		SheetName:     c.SheetName,
		SheetIndex:    c.SheetIndex,
	}, nil
}
