package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

func mapping(row int, vm string) models.ImageMapping {
	return models.ImageMapping{Key: models.MappingKey(row, vm), Row: row, GroupKey: vm}
}

func outputNames(res Result) []string {
	var names []string
	for _, a := range res.Assignments {
		names = append(names, a.OutputName)
	}
	return names
}

func TestPlanGroupsAndDuplicates(t *testing.T) {
	mappings := []models.ImageMapping{mapping(9, "5"), mapping(7, "2"), mapping(5, "2")}

	res := Plan(mappings, []string{"img2.png", "img1.png"}, nil)

	want := []models.AssignedImage{
		{OutputName: "img1_1.png", SourceName: "img1.png", Mapping: mapping(5, "2")},
		{OutputName: "img1_2.png", SourceName: "img1.png", Mapping: mapping(7, "2")},
		{OutputName: "img2.png", SourceName: "img2.png", Mapping: mapping(9, "5")},
	}
	if diff := cmp.Diff(want, res.Assignments); diff != "" {
		t.Errorf("Plan() assignments mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Orphans)
}

func TestPlanOrdersGroupsNumerically(t *testing.T) {
	mappings := []models.ImageMapping{mapping(1, "10"), mapping(2, "2"), mapping(3, "1")}

	res := Plan(mappings, []string{"a.png", "b.png", "c.png"}, nil)

	require.Len(t, res.Assignments, 3)
	assert.Equal(t, "3_1", res.Assignments[0].Mapping.Key)
	assert.Equal(t, "a.png", res.Assignments[0].OutputName)
	assert.Equal(t, "2_2", res.Assignments[1].Mapping.Key)
	assert.Equal(t, "b.png", res.Assignments[1].OutputName)
	assert.Equal(t, "1_10", res.Assignments[2].Mapping.Key)
	assert.Equal(t, "c.png", res.Assignments[2].OutputName)
}

func TestPlanOrphansExtraGroups(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mappings := []models.ImageMapping{mapping(2, "1"), mapping(4, "2"), mapping(6, "3"), mapping(8, "3")}

	res := Plan(mappings, []string{"image1.jpeg"}, zap.New(core))

	assert.Equal(t, []string{"image1.jpeg"}, outputNames(res))
	assert.Equal(t, []string{"4_2", "6_3", "8_3"}, res.Orphans)
	assert.Equal(t, 3, logs.FilterMessage("image mapping has no image file").Len())
	assert.Equal(t, 1, logs.FilterMessage("fewer image files than image mappings").Len())
}

func TestPlanWarnsOnOutputNameCollision(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mappings := []models.ImageMapping{mapping(2, "1"), mapping(3, "1"), mapping(5, "2")}

	res := Plan(mappings, []string{"image1.png", "image1_1.png"}, zap.New(core))

	assert.Equal(t, []string{"image1_1.png", "image1_2.png", "image1_1.png"}, outputNames(res))
	entries := logs.FilterMessage("output image name already used, file will be overwritten").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "image1_1.png", entries[0].ContextMap()["image"])
	assert.Equal(t, "5_2", entries[0].ContextMap()["mapping"])
	assert.Equal(t, "2_1", entries[0].ContextMap()["previous_mapping"])
}

func TestPlanNoFiles(t *testing.T) {
	res := Plan([]models.ImageMapping{mapping(3, "1"), mapping(4, "2")}, nil, nil)

	assert.Empty(t, res.Assignments)
	assert.Equal(t, []string{"3_1", "4_2"}, res.Orphans)
}

func TestPlanNoMappings(t *testing.T) {
	res := Plan(nil, []string{"image1.png"}, nil)

	assert.Empty(t, res.Assignments)
	assert.Empty(t, res.Orphans)
}

func TestPlanNonIntegerGroupKey(t *testing.T) {
	res := Plan([]models.ImageMapping{mapping(3, "x"), mapping(4, "1")}, []string{"image1.png"}, nil)

	assert.Equal(t, []string{"image1.png"}, outputNames(res))
	assert.Equal(t, []string{"3_x"}, res.Orphans)
}

func TestPlanIsDeterministic(t *testing.T) {
	mappings := []models.ImageMapping{
		mapping(12, "3"), mapping(5, "1"), mapping(9, "3"), mapping(2, "7"), mapping(7, "1"),
	}
	files := []string{"image3.png", "image1.png", "image2.gif"}

	first := Plan(mappings, files, nil)
	reversed := make([]models.ImageMapping, len(mappings))
	for i, m := range mappings {
		reversed[len(mappings)-1-i] = m
	}
	second := Plan(reversed, []string{"image2.gif", "image3.png", "image1.png"}, nil)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Plan() is not deterministic (-first +second):\n%s", diff)
	}
	assert.LessOrEqual(t, len(first.Assignments), len(mappings))
}

func TestNumberedName(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected string
	}{
		{"image1.png", 1, "image1_1.png"},
		{"image10.JPEG", 3, "image10_3.JPEG"},
		{"photo.v2.gif", 2, "photo.v2_2.gif"},
		{"noext", 1, "noext_1"},
	}

	for _, tt := range tests {
		if result := numberedName(tt.name, tt.n); result != tt.expected {
			t.Errorf("numberedName(%q, %d) = %q, expected %q", tt.name, tt.n, result, tt.expected)
		}
	}
}
