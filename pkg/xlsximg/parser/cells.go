package parser

import (
	"strconv"
	"strings"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// Classify determines what a cell holds without consulting the shared-string table.
func Classify(c models.Cell) models.CellValue {
	switch c.Type {
	case models.CellTypeSharedString:
		if c.Value == nil {
			return models.CellValue{Kind: models.ValueAbsent}
		}
		index, err := strconv.Atoi(strings.TrimSpace(*c.Value))
		if err != nil {
			return models.CellValue{Kind: models.ValueAbsent}
		}
		return models.CellValue{Kind: models.ValueStringRef, Index: index}
	case models.CellTypeInlineString:
		if c.InlineText != nil && *c.InlineText != "" {
			return models.CellValue{Kind: models.ValueLiteral, Text: strings.TrimSpace(*c.InlineText)}
		}
	}

	if c.Value == nil || *c.Value == "" {
		return models.CellValue{Kind: models.ValueAbsent}
	}
	return models.CellValue{Kind: models.ValueLiteral, Text: strings.TrimSpace(*c.Value)}
}

// ResolveCell returns the effective text of a cell. The second result is
// false when the cell holds no value.
func ResolveCell(c models.Cell, sst models.SharedStrings) (string, bool) {
	v := Classify(c)
	switch v.Kind {
	case models.ValueStringRef:
		return sst.Lookup(v.Index), true
	case models.ValueLiteral:
		return v.Text, true
	default:
		return "", false
	}
}
