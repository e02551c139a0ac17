package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

type xlsxWorksheet struct {
	XMLName xml.Name  `xml:"worksheet"`
	Rows    []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	R     int     `xml:"r,attr"`
	Cells []xlsxC `xml:"c"`
}

type xlsxC struct {
	R  string  `xml:"r,attr"`
	T  string  `xml:"t,attr"`
	VM string  `xml:"vm,attr"`
	V  *string `xml:"v"`
	IS *xlsxIS `xml:"is"`
}

type xlsxIS struct {
	T *string `xml:"t"`
}

// LoadWorksheet reads and decodes a worksheet part from disk.
// The error wraps ErrMissingEntry when the file does not exist and
// ErrXMLParse when it cannot be decoded.
func LoadWorksheet(path string) (*models.Worksheet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingEntry, path)
		}
		return nil, err
	}
	defer f.Close()

	return ParseWorksheet(f)
}

// ParseWorksheet decodes the sheetData grid of a worksheet part.
func ParseWorksheet(r io.Reader) (*models.Worksheet, error) {
	var raw xlsxWorksheet
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrXMLParse, err)
	}

	ws := &models.Worksheet{Rows: make([]models.Row, 0, len(raw.Rows))}
	for _, row := range raw.Rows {
		cells := make([]models.Cell, 0, len(row.Cells))
		for _, c := range row.Cells {
			cell := models.Cell{
				Ref:           c.R,
				Type:          c.T,
				Value:         c.V,
				ValueMetadata: c.VM,
			}
			if c.IS != nil {
				cell.InlineText = c.IS.T
			}
			cells = append(cells, cell)
		}
		ws.Rows = append(ws.Rows, models.Row{Number: row.R, Cells: cells})
	}
	return ws, nil
}
