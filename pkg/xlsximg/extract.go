package xlsximg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/archive"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/parser"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/reconcile"
	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/report"
)

// Extract unpacks the workbook at path, reads its first worksheet and copies
// the in-cell pictures into opts.OutputDir, named after the media files they
// were paired with.
//
// Both opts.TempDir and opts.OutputDir are wiped before the run. Setup and
// decompression failures return an *ExtractionError and no report. Parse
// failures are logged and produce a partial report.
func Extract(path string, opts Options) (*models.Report, error) {
	opts = opts.withDefaults()
	if err := opts.Columns.Validate(); err != nil {
		return nil, NewExtractionError("options", fmt.Errorf("%w: %v", ErrInvalidOptions, err))
	}
	if err := archive.CheckDisjoint(opts.TempDir, opts.OutputDir); err != nil {
		return nil, NewExtractionError("options", fmt.Errorf("%w: %w", ErrInvalidOptions, err))
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewExtractionError("setup", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return nil, NewExtractionError("setup", err)
	}

	runID := uuid.NewString()
	logger := opts.Logger.With(zap.String("run_id", runID))

	defer func() {
		if opts.KeepTemp {
			return
		}
		if err := os.RemoveAll(opts.TempDir); err != nil {
			logger.Error("cannot remove temporary files", zap.String("dir", opts.TempDir), zap.Error(err))
			return
		}
		logger.Debug("removed temporary files", zap.String("dir", opts.TempDir))
	}()

	for _, dir := range []string{opts.TempDir, opts.OutputDir} {
		if err := archive.ResetDir(dir); err != nil {
			return nil, NewExtractionError("setup", err)
		}
	}

	logger.Info("extracting workbook", zap.String("path", path))
	if err := archive.Extract(path, opts.TempDir, logger); err != nil {
		return nil, NewExtractionError("decompress", err)
	}

	sst := parser.LoadSharedStrings(filepath.Join(opts.TempDir, filepath.FromSlash(archive.SharedStringsPath)), logger)

	questions := models.NewQuestionTable()
	var mappings []models.ImageMapping
	ws, err := parser.LoadWorksheet(filepath.Join(opts.TempDir, filepath.FromSlash(archive.WorksheetPath)))
	if err != nil {
		logger.Error("cannot read worksheet", zap.Error(err))
	} else {
		questions = parser.ScanQuestions(ws, sst, opts.Columns, logger)
		mappings = parser.MapIndicators(ws, sst, opts.Columns, logger)
	}

	keys := make([]string, 0, len(mappings))
	for _, m := range mappings {
		keys = append(keys, m.Key)
	}
	logger.Info("image mappings found", zap.Int("count", len(mappings)), zap.Strings("keys", keys))

	mediaDir := filepath.Join(opts.TempDir, filepath.FromSlash(archive.MediaDir))
	files, err := reconcile.ListMedia(mediaDir)
	if err != nil {
		logger.Error("cannot list media files", zap.String("dir", mediaDir), zap.Error(err))
	}
	logger.Debug("media files", zap.Strings("files", files))

	plan := reconcile.Plan(mappings, files, logger)
	assigned := reconcile.Apply(plan, mediaDir, opts.OutputDir, logger)

	rep := report.Assemble(report.Input{
		RunID:     runID,
		OutputDir: opts.OutputDir,
		Questions: questions,
		Mappings:  mappings,
		Assigned:  assigned,
		Orphans:   plan.Orphans,
	})

	logger.Info("extraction complete",
		zap.Int("questions", rep.TotalQuestions),
		zap.Int("images", rep.TotalImages),
		zap.Int("mappings", rep.TotalMappings))
	return rep, nil
}
