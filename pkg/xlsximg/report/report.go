// Package report assembles the extraction report.
package report

import "github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"

// Input holds the stage outputs that make up a report.
type Input struct {
	RunID     string
	OutputDir string
	Questions *models.QuestionTable
	Mappings  []models.ImageMapping
	Assigned  []models.AssignedImage
	Orphans   []string
}

// Assemble builds the report from the stage outputs.
func Assemble(in Input) *models.Report {
	r := &models.Report{
		RunID:           in.RunID,
		OutputDir:       in.OutputDir,
		TotalQuestions:  in.Questions.Len(),
		TotalImages:     len(in.Assigned),
		TotalMappings:   len(in.Mappings),
		Questions:       make([]models.QuestionDetail, 0, in.Questions.Len()),
		Images:          make([]models.ImageDetail, 0, len(in.Assigned)),
		ExtractedImages: make([]string, 0, len(in.Assigned)),
		Orphans:         in.Orphans,
	}

	for _, q := range in.Questions.Records() {
		r.Questions = append(r.Questions, models.QuestionDetail{
			UniqueID:   q.Key(),
			QuestionNo: q.QuestionNo,
			ChapterNo:  q.ChapterNo,
			Number:     q.Number(),
			FullText:   q.Text,
		})
	}

	for _, a := range in.Assigned {
		r.ExtractedImages = append(r.ExtractedImages, a.OutputName)
		r.Images = append(r.Images, models.ImageDetail{
			ImageName:     a.OutputName,
			Row:           a.Mapping.Row,
			QuestionNo:    a.Mapping.QuestionNo,
			ChapterNo:     a.Mapping.ChapterNo,
			UniqueID:      a.UniqueID(),
			Question:      a.Question(),
			QuestionText:  a.Mapping.QuestionText,
			VMValue:       a.Mapping.GroupKey,
			MappingKey:    a.Mapping.Key,
			OriginalImage: a.SourceName,
		})
	}

	return r
}
