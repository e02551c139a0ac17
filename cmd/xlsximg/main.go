// Package main provides the CLI entry point for xlsximg.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/config"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/output"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/storage"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/storage/s3"
)

var (
	configFile string
	cfg        *config.Config
	logger     *zap.Logger

	buildLogger = func(zcfg zap.Config) (*zap.Logger, error) { return zcfg.Build() }
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlsximg [input.xlsx]",
		Short: "Extract in-cell pictures from an Excel file and map them to questions",
		Long: `xlsximg extracts the pictures embedded in the cells of the first worksheet
of an Excel file and links each one to the question row it sits on.

Pictures are paired with media files by position: the n-th picture group
(ordered by its vm value) gets the n-th media file (ordered by name). The
workbook does not record this link directly, so the pairing is a heuristic.

WARNING: the temp and output directories are deleted and recreated on every run.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("keep-temp", false, "Keep the temporary extraction directory")
	flags.BoolP("verbose", "v", false, "Show question text for each image")
	flags.String("temp-dir", xlsximg.DefaultTempDir, "Temporary extraction directory (wiped on every run)")
	flags.StringP("output-dir", "o", xlsximg.DefaultOutputDir, "Output directory for images (wiped on every run)")
	flags.String("format", config.FormatTable, "Report format: table, json, yaml")
	flags.String("report-file", "", "Write the report to this file instead of stdout (json or yaml)")
	flags.String("question-column", "A", "Column holding the question number")
	flags.String("chapter-column", "B", "Column holding the chapter number")
	flags.String("text-column", "C", "Column holding the question text")
	flags.String("s3-bucket", "", "Upload extracted images to this S3 bucket")
	flags.String("s3-prefix", "", "Key prefix for uploaded images")
	flags.String("s3-region", "us-east-1", "S3 region")
	flags.String("s3-endpoint", "", "Custom S3 endpoint (S3-compatible storage)")

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = buildLogger(zcfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts := xlsximg.Options{
		TempDir:   cfg.TempDir,
		OutputDir: cfg.OutputDir,
		KeepTemp:  cfg.KeepTemp,
		Columns:   cfg.Columns,
		Logger:    logger,
	}

	report, err := xlsximg.Extract(inputPath, opts)
	logKeptTemp()
	if err != nil {
		logger.Error("processing failed", zap.Error(err))
		return fmt.Errorf("extraction failed: %w", err)
	}

	if cfg.S3.Enabled() {
		if err := publish(cmd, report); err != nil {
			return err
		}
	}

	return writeReport(cmd, report)
}

// logKeptTemp reports where the unpacked workbook was left, whether or not
// the run succeeded.
func logKeptTemp() {
	if !cfg.KeepTemp {
		return
	}
	if abs, err := filepath.Abs(cfg.TempDir); err == nil {
		logger.Info("temporary files kept", zap.String("dir", abs))
	}
}

func publish(cmd *cobra.Command, report *models.Report) error {
	store, err := s3.NewS3Client(cmd.Context(), &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to create s3 client: %w", err)
	}
	p := storage.NewPublisher(store, cfg.S3.Bucket, cfg.S3.Prefix, logger)
	if _, err := p.Publish(cmd.Context(), report.OutputDir, report.ExtractedImages); err != nil {
		return fmt.Errorf("failed to publish images: %w", err)
	}
	return nil
}

func writeReport(cmd *cobra.Command, report *models.Report) error {
	if cfg.ReportFile != "" {
		format := cfg.Format
		if format == config.FormatTable {
			format = config.FormatJSON
		}
		if err := output.WriteFile(report, format, cfg.ReportFile); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	switch cfg.Format {
	case config.FormatJSON, config.FormatYAML:
		data, err := output.Serialize(report, cfg.Format)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	default:
		return output.RenderText(cmd.OutOrStdout(), report, cfg.Verbose)
	}
}
