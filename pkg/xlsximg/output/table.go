package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Text truncation limits for the question list.
const (
	summaryTextRunes = 50
	verboseTextRunes = 100
)

// RenderText writes a human-readable report: a summary, the question list,
// the image table and a totals line. Verbose adds question text under each image.
func RenderText(w io.Writer, r *models.Report, verbose bool) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Summary") + "\n")
	fmt.Fprintf(&b, "- Questions: %d\n", r.TotalQuestions)
	fmt.Fprintf(&b, "- Images: %d\n\n", r.TotalImages)

	b.WriteString(headingStyle.Render("Questions") + "\n")
	for _, q := range r.Questions {
		fmt.Fprintf(&b, "- %s: %s\n", q.Number, truncate(q.FullText, summaryTextRunes))
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Image mappings") + "\n")
	for _, img := range r.Images {
		if img.Question == "" {
			fmt.Fprintf(&b, "- %s: unmapped\n", img.ImageName)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (row %d)\n", img.ImageName, img.Question, img.Row)
		if verbose {
			fmt.Fprintf(&b, "  Question: %s\n", truncate(img.QuestionText, verboseTextRunes))
		}
	}
	for _, key := range r.Orphans {
		b.WriteString(warningStyle.Render(fmt.Sprintf("- %s: no image file", key)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(ImageTable(r) + "\n\n")
	fmt.Fprintf(&b, "Total: %d questions, %d images, %d mappings\n",
		r.TotalQuestions, r.TotalImages, r.TotalMappings)

	_, err := io.WriteString(w, b.String())
	return err
}

// ImageTable renders the image mappings as a bordered table.
func ImageTable(r *models.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Image", "Chapter", "Question", "Position", "Mapping key", "Original image").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, img := range r.Images {
		t.Row(
			img.ImageName,
			orNA(img.ChapterNo),
			orNA(img.QuestionNo),
			fmt.Sprintf("row %d", img.Row),
			orNA(img.MappingKey),
			orNA(img.OriginalImage),
		)
	}
	return t.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
