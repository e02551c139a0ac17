package models

// QuestionDetail is the display projection of a QuestionRecord.
type QuestionDetail struct {
	// UniqueID is "chapter_question".
	UniqueID string `json:"unique_id" yaml:"unique_id"`
	// QuestionNo is the question number.
	QuestionNo string `json:"question_no" yaml:"question_no"`
	// ChapterNo is the chapter number.
	ChapterNo string `json:"chapter_no" yaml:"chapter_no"`
	// Number is "chapter.question".
	Number string `json:"number" yaml:"number"`
	// FullText is the question text.
	FullText string `json:"full_text" yaml:"full_text"`
}

// ImageDetail is the report row for one output image.
type ImageDetail struct {
	// ImageName is the output file name.
	ImageName string `json:"image_name" yaml:"image_name"`
	// Row is the worksheet row of the indicator.
	Row int `json:"row" yaml:"row"`
	// QuestionNo is the question number of the row.
	QuestionNo string `json:"question_no" yaml:"question_no"`
	// ChapterNo is the chapter number of the row.
	ChapterNo string `json:"chapter_no" yaml:"chapter_no"`
	// UniqueID is "chapter_question".
	UniqueID string `json:"unique_id" yaml:"unique_id"`
	// Question is "chapter.question" (empty if the row has neither).
	Question string `json:"question" yaml:"question"`
	// QuestionText is the question text of the row.
	QuestionText string `json:"question_text" yaml:"question_text"`
	// VMValue is the grouping key.
	VMValue string `json:"vm_value" yaml:"vm_value"`
	// MappingKey is "row_vm".
	MappingKey string `json:"mapping_key" yaml:"mapping_key"`
	// OriginalImage is the media file the image was copied from.
	OriginalImage string `json:"original_image" yaml:"original_image"`
}

// Report is the result of one extraction run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id" yaml:"run_id"`
	// TotalQuestions is the number of question records.
	TotalQuestions int `json:"total_questions" yaml:"total_questions"`
	// TotalImages is the number of output images created.
	TotalImages int `json:"total_images" yaml:"total_images"`
	// TotalMappings is the number of image mappings before assignment.
	TotalMappings int `json:"total_mappings" yaml:"total_mappings"`
	// Questions lists question records in sheet order.
	Questions []QuestionDetail `json:"question_details" yaml:"question_details"`
	// Images lists output images in assignment order.
	Images []ImageDetail `json:"image_mappings" yaml:"image_mappings"`
	// ExtractedImages lists output file names in creation order.
	ExtractedImages []string `json:"extracted_images" yaml:"extracted_images"`
	// Orphans lists mapping keys that received no image.
	Orphans []string `json:"orphaned_mappings,omitempty" yaml:"orphaned_mappings,omitempty"`
	// OutputDir is the directory holding the extracted images.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}
