package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// LoadSharedStrings reads xl/sharedStrings.xml from disk.
// A missing or malformed file yields an empty table and a warning; callers
// must tolerate lookups of indices that are not present.
func LoadSharedStrings(path string, logger *zap.Logger) models.SharedStrings {
	logger = orNop(logger)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("shared string table not found", zap.String("path", path))
		} else {
			logger.Warn("cannot open shared string table", zap.String("path", path), zap.Error(err))
		}
		return models.SharedStrings{}
	}
	defer f.Close()

	sst, err := ParseSharedStrings(f)
	if err != nil {
		logger.Warn("cannot parse shared string table", zap.String("path", path), zap.Error(err))
		return models.SharedStrings{}
	}

	logger.Info("loaded shared strings", zap.Int("count", len(sst)))
	return sst
}

// ParseSharedStrings decodes a shared-string table. Items are indexed by their
// position in the document. The text of an item is its first t element;
// items without one get the placeholder "empty string <index>".
func ParseSharedStrings(r io.Reader) (models.SharedStrings, error) {
	result := make(models.SharedStrings)
	decoder := xml.NewDecoder(r)

	index := -1
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.SharedStrings{}, fmt.Errorf("%w: %v", ErrXMLParse, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "si" {
			continue
		}
		index++
		text, found, err := parseStringItem(decoder)
		if err != nil {
			return models.SharedStrings{}, fmt.Errorf("%w: %v", ErrXMLParse, err)
		}
		if found {
			result[index] = text
		} else {
			result[index] = fmt.Sprintf("empty string %d", index)
		}
	}

	return result, nil
}

// parseStringItem consumes an si element and returns the text of its first t element.
func parseStringItem(decoder *xml.Decoder) (text string, found bool, err error) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", false, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" && !found {
				txt, err := readElementText(decoder)
				if err != nil {
					return "", false, err
				}
				text, found = txt, true
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, found, nil
}

// readElementText reads character data until the current element closes.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
