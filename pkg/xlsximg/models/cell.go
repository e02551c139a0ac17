// Package models defines data structures for spreadsheet image extraction.
package models

// Cell is a read-only view of a worksheet c element.
type Cell struct {
	// Ref is the cell reference (e.g., "B5").
	Ref string `json:"ref"`
	// Type is the raw t attribute ("s", "e", "inlineStr", or empty for numbers).
	Type string `json:"type,omitempty"`
	// Value is the text of the v element (nil when the element is absent).
	Value *string `json:"value,omitempty"`
	// InlineText is the text of the is/t element for inline strings.
	InlineText *string `json:"inline_text,omitempty"`
	// ValueMetadata is the raw vm attribute.
	ValueMetadata string `json:"vm,omitempty"`
}

// Cell type attribute values.
const (
	CellTypeSharedString = "s"
	CellTypeError        = "e"
	CellTypeInlineString = "inlineStr"
)

// ValueKind discriminates the variants of CellValue.
type ValueKind int

const (
	// ValueAbsent means the cell carries no usable value.
	ValueAbsent ValueKind = iota
	// ValueStringRef means the cell points into the shared-string table.
	ValueStringRef
	// ValueLiteral means the cell stores its text directly.
	ValueLiteral
)

// CellValue is the classified content of a cell.
type CellValue struct {
	Kind ValueKind
	// Index is the shared-string index (ValueStringRef only).
	Index int
	// Text is the literal text (ValueLiteral only).
	Text string
}

// Row is a worksheet row element with its cells in document order.
type Row struct {
	// Number is the r attribute (1-based, 0 when missing).
	Number int `json:"r"`
	// Cells are the row's c elements.
	Cells []Cell `json:"cells"`
}

// Worksheet is the decoded sheetData grid.
type Worksheet struct {
	Rows []Row `json:"rows"`
}
