package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputPath   string `mapstructure:"input_path" yaml:"input_path"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	LexiconPath string `mapstructure:"lexicon_path" yaml:"lexicon_path"`
	FontPath    string `mapstructure:"font_path" yaml:"font_path"`

	// Spreadsheet ingestion
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`

	// Chart rendering
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`
	ChartDPI    int `mapstructure:"chart_dpi" yaml:"chart_dpi"`
	TopRegions  int `mapstructure:"top_regions" yaml:"top_regions"`

	// Keyword extraction
	TopPros int `mapstructure:"top_pros" yaml:"top_pros"`
	TopCons int `mapstructure:"top_cons" yaml:"top_cons"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.reviewlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".reviewlens")
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
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("REVIEWLENS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input_path", "")
	v.SetDefault("output_dir", "review_analysis")
	v.SetDefault("lexicon_path", "")
	v.SetDefault("font_path", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("delimiter", "")
	v.SetDefault("chart_width", 800)
	v.SetDefault("chart_height", 600)
	v.SetDefault("chart_dpi", 100)
	v.SetDefault("top_regions", 10)
	v.SetDefault("top_pros", 5)
	v.SetDefault("top_cons", 3)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".reviewlens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
