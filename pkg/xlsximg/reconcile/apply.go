package reconcile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// Apply copies the planned images from mediaDir into outDir and returns the
// assignments that were written. A failed copy is logged and skipped.
func Apply(res Result, mediaDir, outDir string, logger *zap.Logger) []models.AssignedImage {
	if logger == nil {
		logger = zap.NewNop()
	}

	written := make([]models.AssignedImage, 0, len(res.Assignments))
	for _, a := range res.Assignments {
		src := filepath.Join(mediaDir, a.SourceName)
		dst := filepath.Join(outDir, a.OutputName)
		if err := copyFile(src, dst); err != nil {
			logger.Error("cannot copy image",
				zap.String("source", a.SourceName),
				zap.String("image", a.OutputName),
				zap.Error(err))
			continue
		}
		written = append(written, a)
		logger.Info("image assigned",
			zap.String("image", a.OutputName),
			zap.Int("row", a.Mapping.Row),
			zap.String("vm", a.Mapping.GroupKey),
			zap.String("question", a.Mapping.ChapterNo+"."+a.Mapping.QuestionNo))
	}
	return written
}

// copyFile copies src to dst, keeping the permission bits and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
