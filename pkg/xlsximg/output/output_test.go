package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:          "run-1",
		TotalQuestions: 1,
		TotalImages:    2,
		TotalMappings:  3,
		Questions: []models.QuestionDetail{{
			UniqueID: "Alpha_1", QuestionNo: "1", ChapterNo: "Alpha", Number: "Alpha.1",
			FullText: strings.Repeat("x", 60),
		}},
		Images: []models.ImageDetail{
			{ImageName: "img1_1.png", Row: 5, QuestionNo: "1", ChapterNo: "Alpha", Question: "Alpha.1",
				QuestionText: "Beta", VMValue: "2", MappingKey: "5_2", OriginalImage: "img1.png"},
			{ImageName: "img1_2.png", Row: 9, VMValue: "2", MappingKey: "9_2", OriginalImage: "img1.png"},
		},
		ExtractedImages: []string{"img1_1.png", "img1_2.png"},
		Orphans:         []string{"11_7"},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2), decoded["total_images"])
	assert.Equal(t, float64(3), decoded["total_mappings"])
	assert.Contains(t, decoded, "question_details")
	assert.Contains(t, decoded, "orphaned_mappings")
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(sampleReport())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["total_questions"])
	assert.Equal(t, []interface{}{"img1_1.png", "img1_2.png"}, decoded["extracted_images"])
}

func TestSerializeUnknownFormat(t *testing.T) {
	_, err := Serialize(sampleReport(), "xml")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteFile(sampleReport(), "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-1"`)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, sampleReport(), true))
	out := buf.String()

	assert.Contains(t, out, "- Alpha.1: "+strings.Repeat("x", 50)+"...")
	assert.Contains(t, out, "- img1_1.png: Alpha.1 (row 5)")
	assert.Contains(t, out, "  Question: Beta")
	assert.Contains(t, out, "- img1_2.png: unmapped")
	assert.Contains(t, out, "11_7: no image file")
	assert.Contains(t, out, "Total: 1 questions, 2 images, 3 mappings")
}

func TestImageTable(t *testing.T) {
	out := ImageTable(sampleReport())

	assert.Contains(t, out, "Mapping key")
	assert.Contains(t, out, "img1_2.png")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "row 9")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		n        int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trunc..."},
		{"題目文字很長", 2, "題目..."},
	}

	for _, tt := range tests {
		if result := truncate(tt.input, tt.n); result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.input, tt.n, result, tt.expected)
		}
	}
}
