// Package reconcile pairs image-indicator groups with the media files of an
// xlsx package.
//
// The pairing is a positional heuristic: the i-th group in ascending integer
// vm order receives the i-th media file in file-name order. The package format
// does not record which picture a cell shows, so the pairing is only as good
// as the assumption that Excel numbers both in the same order.
package reconcile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageExtensions lists the media file extensions that are treated as images.
var ImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// IsImageFile reports whether name has a recognized image extension (case-insensitive).
func IsImageFile(name string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListMedia returns the names of image files directly under dir, sorted by name.
// A missing directory yields no files.
func ListMedia(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsImageFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
