// Package config loads extractor settings from flags, environment variables
// and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/archive"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/parser"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "XLSXIMG"

// Report output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config holds all extractor settings.
type Config struct {
	Debug      bool
	KeepTemp   bool
	Verbose    bool
	TempDir    string
	OutputDir  string
	Format     string
	ReportFile string
	Columns    parser.Columns
	S3         S3Config
}

// S3Config holds settings for publishing extracted images to S3.
// Publishing is disabled when Bucket is empty.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether images should be published.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"debug":           "debug",
	"keep-temp":       "keep_temp",
	"verbose":         "verbose",
	"temp-dir":        "temp_dir",
	"output-dir":      "output_dir",
	"format":          "format",
	"report-file":     "report_file",
	"question-column": "columns.question",
	"chapter-column":  "columns.chapter",
	"text-column":     "columns.text",
	"s3-bucket":       "s3.bucket",
	"s3-prefix":       "s3.prefix",
	"s3-region":       "s3.region",
	"s3-endpoint":     "s3.endpoint",
}

// Load resolves the configuration. Precedence, highest first: flags that were
// set explicitly, XLSXIMG_* environment variables, the config file (if
// configFile is not empty), defaults.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("keep_temp", false)
	v.SetDefault("verbose", false)
	v.SetDefault("temp_dir", "temp_extraction")
	v.SetDefault("output_dir", "extracted_images")
	v.SetDefault("format", FormatTable)
	v.SetDefault("report_file", "")

	defaults := parser.DefaultColumns()
	v.SetDefault("columns.question", defaults.Question)
	v.SetDefault("columns.chapter", defaults.Chapter)
	v.SetDefault("columns.text", defaults.Text)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Debug:      v.GetBool("debug"),
		KeepTemp:   v.GetBool("keep_temp"),
		Verbose:    v.GetBool("verbose"),
		TempDir:    v.GetString("temp_dir"),
		OutputDir:  v.GetString("output_dir"),
		Format:     strings.ToLower(v.GetString("format")),
		ReportFile: v.GetString("report_file"),
		Columns: parser.Columns{
			Question: strings.ToUpper(v.GetString("columns.question")),
			Chapter:  strings.ToUpper(v.GetString("columns.chapter")),
			Text:     strings.ToUpper(v.GetString("columns.text")),
		},
		S3: S3Config{
			Bucket:    v.GetString("s3.bucket"),
			Prefix:    v.GetString("s3.prefix"),
			Region:    v.GetString("s3.region"),
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or yaml)", c.Format)
	}
	if c.TempDir == "" || c.OutputDir == "" {
		return fmt.Errorf("temp_dir and output_dir must not be empty")
	}
	if err := archive.CheckDisjoint(c.TempDir, c.OutputDir); err != nil {
		return fmt.Errorf("temp_dir and output_dir must not overlap: %w", err)
	}
	return c.Columns.Validate()
}
