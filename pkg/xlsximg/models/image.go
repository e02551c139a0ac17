package models

import "strconv"

// ImageIndicator is an error cell standing in for an embedded image.
type ImageIndicator struct {
	// Row is the worksheet row number.
	Row int `json:"row"`
	// CellRef is the reference of the triggering cell.
	CellRef string `json:"cell_ref"`
	// GroupKey is the raw vm attribute value.
	GroupKey string `json:"vm_value"`
}

// Key returns the mapping key "row_vm".
func (i ImageIndicator) Key() string {
	return MappingKey(i.Row, i.GroupKey)
}

// MappingKey builds the "row_vm" key shared by indicators and mappings.
func MappingKey(row int, groupKey string) string {
	return strconv.Itoa(row) + "_" + groupKey
}

// ImageMapping links an image indicator to the question columns of its row.
// Column fields are empty when the row lacks the corresponding cell.
type ImageMapping struct {
	// Key is "row_vm".
	Key string `json:"mapping_key"`
	// Row is the worksheet row number.
	Row int `json:"row"`
	// QuestionNo is the question column value of the row.
	QuestionNo string `json:"question_no"`
	// ChapterNo is the chapter column value of the row.
	ChapterNo string `json:"chapter_no"`
	// QuestionText is the text column value of the row.
	QuestionText string `json:"question_text"`
	// GroupKey is the vm value shared by all indicators of one embedded image.
	GroupKey string `json:"vm_value"`
}

// AssignedImage is an output file produced for one image mapping.
type AssignedImage struct {
	// OutputName is the file name written to the output directory.
	OutputName string `json:"image_name"`
	// SourceName is the media file the output was copied from.
	SourceName string `json:"original_image"`
	// Mapping is the mapping the output belongs to.
	Mapping ImageMapping `json:"mapping"`
}

// UniqueID returns "chapter_question" for the owning row.
func (a AssignedImage) UniqueID() string {
	return a.Mapping.ChapterNo + "_" + a.Mapping.QuestionNo
}

// Question returns "chapter.question" for the owning row.
func (a AssignedImage) Question() string {
	if a.Mapping.ChapterNo == "" && a.Mapping.QuestionNo == "" {
		return ""
	}
	return a.Mapping.ChapterNo + "." + a.Mapping.QuestionNo
}
