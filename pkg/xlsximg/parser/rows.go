package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// Columns names the column letters holding the question number, chapter number and question text.
type Columns struct {
	Question string
	Chapter  string
	Text     string
}

// DefaultColumns returns columns A (question), B (chapter) and C (text).
func DefaultColumns() Columns {
	return Columns{Question: "A", Chapter: "B", Text: "C"}
}

// Validate checks that every column is a valid column name.
func (c Columns) Validate() error {
	for _, col := range []struct{ role, name string }{
		{"question", c.Question},
		{"chapter", c.Chapter},
		{"text", c.Text},
	} {
		if _, err := excelize.ColumnNameToNumber(col.name); err != nil {
			return fmt.Errorf("invalid %s column %q: %w", col.role, col.name, err)
		}
	}
	return nil
}

// RowValues holds the resolved question columns of one row.
type RowValues struct {
	QuestionNo string
	ChapterNo  string
	Text       string
	// Complete is true when all three cells exist.
	Complete bool
}

// LookupRow finds the first cell of row whose reference starts with
// "<column><row number>" for each configured column and resolves it.
// The reference is matched by prefix, not exactly.
func LookupRow(row models.Row, sst models.SharedStrings, cols Columns) RowValues {
	suffix := strconv.Itoa(row.Number)
	qCell := findCell(row.Cells, strings.ToUpper(cols.Question)+suffix)
	chCell := findCell(row.Cells, strings.ToUpper(cols.Chapter)+suffix)
	tCell := findCell(row.Cells, strings.ToUpper(cols.Text)+suffix)

	var v RowValues
	if qCell != nil {
		v.QuestionNo, _ = ResolveCell(*qCell, sst)
	}
	if chCell != nil {
		v.ChapterNo, _ = ResolveCell(*chCell, sst)
	}
	if tCell != nil {
		v.Text, _ = ResolveCell(*tCell, sst)
	}
	v.Complete = qCell != nil && chCell != nil && tCell != nil
	return v
}

// ScanQuestions builds the question table. A row contributes a record only
// when all three columns exist and resolve to non-empty text. A repeated
// chapter/question key replaces the earlier record.
func ScanQuestions(ws *models.Worksheet, sst models.SharedStrings, cols Columns, logger *zap.Logger) *models.QuestionTable {
	logger = orNop(logger)
	table := models.NewQuestionTable()
	if ws == nil {
		return table
	}

	for _, row := range ws.Rows {
		v := LookupRow(row, sst, cols)
		if !v.Complete || v.QuestionNo == "" || v.ChapterNo == "" || v.Text == "" {
			continue
		}
		q := models.QuestionRecord{
			QuestionNo: v.QuestionNo,
			ChapterNo:  v.ChapterNo,
			Row:        row.Number,
			Text:       v.Text,
		}
		table.Put(q)
		logger.Debug("found question", zap.String("number", q.Number()), zap.Int("row", row.Number))
	}

	logger.Info("question scan complete", zap.Int("questions", table.Len()))
	return table
}

func findCell(cells []models.Cell, prefix string) *models.Cell {
	for i := range cells {
		if strings.HasPrefix(cells[i].Ref, prefix) {
			return &cells[i]
		}
	}
	return nil
}
