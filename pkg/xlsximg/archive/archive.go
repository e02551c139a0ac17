// Package archive unpacks an xlsx package into a working directory.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Package part paths used by the extractor.
const (
	WorksheetPath     = "xl/worksheets/sheet1.xml"
	SharedStringsPath = "xl/sharedStrings.xml"
	MediaDir          = "xl/media"
)

// ErrCorrupt indicates the archive cannot be opened or fails its checksum verification.
var ErrCorrupt = errors.New("corrupt archive")

// Verify reads every entry of the archive to the end so that the zip reader
// checks each CRC-32. It returns the name of the first bad entry, if any.
func Verify(r *zip.Reader) (string, error) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return f.Name, err
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return f.Name, err
		}
	}
	return "", nil
}

// Extract verifies the archive at path and unpacks it into dest.
// Any failure to open or verify the archive wraps ErrCorrupt.
func Extract(path, dest string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer r.Close()

	if name, err := Verify(&r.Reader); err != nil {
		return fmt.Errorf("%w: entry %s: %v", ErrCorrupt, name, err)
	}

	logger.Debug("archive entries", zap.Int("count", len(r.File)))
	for _, f := range r.File {
		logger.Debug("archive entry", zap.String("name", f.Name), zap.Uint64("size", f.UncompressedSize64))
	}

	for _, f := range r.File {
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}

	for _, required := range []string{WorksheetPath, MediaDir} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(required))); err != nil {
			logger.Warn("required package part not found", zap.String("part", required))
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	target, err := safeJoin(dest, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if !f.Modified.IsZero() {
		_ = os.Chtimes(target, f.Modified, f.Modified)
	}
	return nil
}

// safeJoin resolves an entry name under dest and rejects names that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: illegal entry path %q", ErrCorrupt, name)
	}
	return target, nil
}

// ErrOverlappingDirs indicates two working directories are equal or nested.
var ErrOverlappingDirs = errors.New("directories overlap")

// CheckDisjoint returns ErrOverlappingDirs when a and b are the same
// directory or one lies inside the other. ResetDir on either would then
// destroy the other's contents.
func CheckDisjoint(a, b string) error {
	absA, err := filepath.Abs(a)
	if err != nil {
		return err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return err
	}
	if within(absA, absB) || within(absB, absA) {
		return fmt.Errorf("%w: %s and %s", ErrOverlappingDirs, a, b)
	}
	return nil
}

// within reports whether path equals dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ResetDir removes dir and everything in it, then recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
