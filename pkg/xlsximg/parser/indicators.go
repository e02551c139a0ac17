package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// ErrorSentinel is the cell text Excel writes for an in-cell picture.
const ErrorSentinel = "#VALUE!"

// IsImageIndicator reports whether c is an error cell holding the sentinel
// text with a non-blank vm attribute.
func IsImageIndicator(c models.Cell) bool {
	if c.Type != models.CellTypeError || c.Value == nil || *c.Value != ErrorSentinel {
		return false
	}
	return strings.TrimSpace(c.ValueMetadata) != ""
}

// DetectIndicators scans every cell of every row for image indicators.
func DetectIndicators(ws *models.Worksheet, logger *zap.Logger) []models.ImageIndicator {
	logger = orNop(logger)
	if ws == nil {
		return nil
	}

	var result []models.ImageIndicator
	for _, row := range ws.Rows {
		for _, c := range row.Cells {
			if !IsImageIndicator(c) {
				continue
			}
			ind := models.ImageIndicator{Row: row.Number, CellRef: c.Ref, GroupKey: c.ValueMetadata}
			result = append(result, ind)
			col, _, err := excelize.SplitCellName(ind.CellRef)
			if err != nil {
				col = "?"
			}
			logger.Debug("found image indicator",
				zap.Int("row", ind.Row),
				zap.String("cell", ind.CellRef),
				zap.String("column", col),
				zap.String("vm", ind.GroupKey))
		}
	}
	return result
}

// MapIndicators detects image indicators and attaches the question columns of
// their rows. Mappings are keyed "row_vm"; an indicator whose key was already
// seen replaces the earlier mapping. The result keeps first-seen order.
func MapIndicators(ws *models.Worksheet, sst models.SharedStrings, cols Columns, logger *zap.Logger) []models.ImageMapping {
	logger = orNop(logger)
	indicators := DetectIndicators(ws, logger)
	if len(indicators) == 0 {
		return nil
	}

	rows := make(map[int]models.Row, len(ws.Rows))
	for _, row := range ws.Rows {
		if _, ok := rows[row.Number]; !ok {
			rows[row.Number] = row
		}
	}

	index := make(map[string]int, len(indicators))
	var mappings []models.ImageMapping
	for _, ind := range indicators {
		v := LookupRow(rows[ind.Row], sst, cols)
		m := models.ImageMapping{
			Key:          ind.Key(),
			Row:          ind.Row,
			QuestionNo:   v.QuestionNo,
			ChapterNo:    v.ChapterNo,
			QuestionText: v.Text,
			GroupKey:     ind.GroupKey,
		}
		if i, ok := index[m.Key]; ok {
			mappings[i] = m
		} else {
			index[m.Key] = len(mappings)
			mappings = append(mappings, m)
		}
		logger.Info("image indicator mapped",
			zap.Int("row", m.Row),
			zap.String("vm", m.GroupKey),
			zap.String("question", m.ChapterNo+"."+m.QuestionNo))
	}
	return mappings
}
