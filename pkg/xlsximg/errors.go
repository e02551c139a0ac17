package xlsximg

import (
	"errors"
	"fmt"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/archive"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidOptions indicates the options cannot be used for a run.
var ErrInvalidOptions = errors.New("invalid options")

// ErrArchiveCorrupt indicates the input cannot be opened as a zip archive or
// fails its integrity check.
var ErrArchiveCorrupt = archive.ErrCorrupt

// ErrMissingEntry indicates a required package part is absent.
var ErrMissingEntry = parser.ErrMissingEntry

// ErrXMLParse indicates a package part is not well-formed XML.
var ErrXMLParse = parser.ErrXMLParse

// ExtractionError represents a failure that aborted a run.
type ExtractionError struct {
	Phase string // "setup", "decompress", "options"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed during %s: %v", e.Phase, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(phase string, err error) *ExtractionError {
	return &ExtractionError{
		Phase: phase,
		Err:   err,
	}
}
