// Package xlsximg extracts in-cell pictures from an xlsx workbook and links
// each picture to the question row it appears on.
package xlsximg

import (
	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/parser"
)

// Default working directories, relative to the current directory.
const (
	DefaultTempDir   = "temp_extraction"
	DefaultOutputDir = "extracted_images"
)

// Options configures extraction behavior.
type Options struct {
	// TempDir is where the archive is unpacked. It is deleted and recreated
	// at the start of every run.
	TempDir string
	// OutputDir receives the extracted images. It is deleted and recreated
	// at the start of every run.
	OutputDir string
	// KeepTemp leaves TempDir in place after the run.
	KeepTemp bool
	// Columns names the question, chapter and text columns.
	Columns parser.Columns
	// Logger receives progress and warnings. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		TempDir:   DefaultTempDir,
		OutputDir: DefaultOutputDir,
		Columns:   parser.DefaultColumns(),
	}
}

func (o Options) withDefaults() Options {
	if o.TempDir == "" {
		o.TempDir = DefaultTempDir
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Columns == (parser.Columns{}) {
		o.Columns = parser.DefaultColumns()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
