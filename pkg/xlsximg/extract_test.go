package xlsximg

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testSharedStrings = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
<si><t>Alpha</t></si><si><t>Beta</t></si>
</sst>`

const testSheet = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="5"><c r="A5"><v>1</v></c><c r="B5" t="s"><v>0</v></c><c r="C5" t="s"><v>1</v></c><c r="D5" t="e" vm="2"><v>#VALUE!</v></c></row>
<row r="7"><c r="A7"><v>2</v></c><c r="B7" t="s"><v>0</v></c><c r="C7" t="s"><v>1</v></c><c r="D7" t="e" vm="2"><v>#VALUE!</v></c></row>
<row r="9"><c r="A9"><v>3</v></c><c r="B9" t="s"><v>0</v></c><c r="C9" t="s"><v>9</v></c><c r="D9" t="e" vm="5"><v>#VALUE!</v></c></row>
<row r="10"><c r="A10"><v>4</v></c><c r="D10" t="e"><v>#VALUE!</v></c></row>
</sheetData>
</worksheet>`

func writeWorkbook(t *testing.T, files map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testOptions(t *testing.T, logger *zap.Logger) Options {
	t.Helper()
	base := t.TempDir()
	opts := DefaultOptions()
	opts.TempDir = filepath.Join(base, "temp_extraction")
	opts.OutputDir = filepath.Join(base, "extracted_images")
	opts.Logger = logger
	return opts
}

func TestExtract(t *testing.T) {
	path := writeWorkbook(t, map[string]string{
		"xl/sharedStrings.xml":     testSharedStrings,
		"xl/worksheets/sheet1.xml": testSheet,
		"xl/media/img1.png":        "first image",
		"xl/media/img2.png":        "second image",
		"xl/media/image3.emf":      "ignored",
	})
	opts := testOptions(t, nil)

	rep, err := Extract(path, opts)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 3, rep.TotalQuestions)
	assert.Equal(t, 3, rep.TotalImages)
	assert.Equal(t, 3, rep.TotalMappings)
	assert.Equal(t, []string{"img1_1.png", "img1_2.png", "img2.png"}, rep.ExtractedImages)
	assert.Empty(t, rep.Orphans)

	assert.Equal(t, "Alpha_1", rep.Questions[0].UniqueID)
	assert.Equal(t, "Alpha.1", rep.Questions[0].Number)
	assert.Equal(t, "Beta", rep.Questions[0].FullText)
	assert.Equal(t, "unknown string 9", rep.Questions[2].FullText)

	img := rep.Images[2]
	assert.Equal(t, "img2.png", img.ImageName)
	assert.Equal(t, "img2.png", img.OriginalImage)
	assert.Equal(t, "9_5", img.MappingKey)
	assert.Equal(t, "Alpha.3", img.Question)
	assert.Equal(t, 9, img.Row)

	for _, name := range []string{"img1_1.png", "img1_2.png"} {
		data, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
		require.NoError(t, err)
		assert.Equal(t, "first image", string(data))
	}
	assert.NoDirExists(t, opts.TempDir)
}

func TestExtractWithoutMedia(t *testing.T) {
	path := writeWorkbook(t, map[string]string{
		"xl/sharedStrings.xml": testSharedStrings,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>
<row r="2"><c r="D2" t="e" vm="1"><v>#VALUE!</v></c></row>
<row r="3"><c r="D3" t="e" vm="2"><v>#VALUE!</v></c></row>
</sheetData></worksheet>`,
	})
	core, logs := observer.New(zapcore.WarnLevel)

	rep, err := Extract(path, testOptions(t, zap.New(core)))
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, 0, rep.TotalImages)
	assert.Equal(t, 2, rep.TotalMappings)
	assert.Equal(t, []string{"2_1", "3_2"}, rep.Orphans)
	assert.Equal(t, 2, logs.FilterMessage("image mapping has no image file").Len())
}

func TestExtractMissingWorksheet(t *testing.T) {
	path := writeWorkbook(t, map[string]string{"xl/media/image1.png": "x"})
	core, logs := observer.New(zapcore.ErrorLevel)

	rep, err := Extract(path, testOptions(t, zap.New(core)))
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Zero(t, rep.TotalQuestions)
	assert.Zero(t, rep.TotalImages)
	assert.Equal(t, 1, logs.FilterMessage("cannot read worksheet").Len())
}

func TestExtractMalformedWorksheet(t *testing.T) {
	path := writeWorkbook(t, map[string]string{"xl/worksheets/sheet1.xml": "<worksheet><sheetData>"})

	rep, err := Extract(path, testOptions(t, nil))
	require.NoError(t, err)
	assert.Zero(t, rep.TotalMappings)
}

func TestExtractCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	opts := testOptions(t, nil)

	rep, err := Extract(path, opts)

	assert.Nil(t, rep)
	require.ErrorIs(t, err, ErrArchiveCorrupt)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "decompress", extErr.Phase)
	assert.NoDirExists(t, opts.TempDir)
}

func TestExtractFileNotFound(t *testing.T) {
	rep, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), testOptions(t, nil))

	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractInvalidColumns(t *testing.T) {
	opts := testOptions(t, nil)
	opts.Columns.Text = "C1"

	_, err := Extract("unused.xlsx", opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "options", extErr.Phase)
}

func TestExtractRejectsNestedDirs(t *testing.T) {
	path := writeWorkbook(t, map[string]string{
		"xl/worksheets/sheet1.xml": testSheet,
		"xl/media/img1.png":        "first image",
	})
	base := t.TempDir()

	tests := []struct {
		name      string
		tempDir   string
		outputDir string
	}{
		{"output inside temp", filepath.Join(base, "work"), filepath.Join(base, "work", "out")},
		{"temp inside output", filepath.Join(base, "out", "tmp"), filepath.Join(base, "out")},
		{"same dir", filepath.Join(base, "same"), filepath.Join(base, "same")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.TempDir = tt.tempDir
			opts.OutputDir = tt.outputDir

			rep, err := Extract(path, opts)

			assert.Nil(t, rep)
			require.ErrorIs(t, err, ErrInvalidOptions)
			var extErr *ExtractionError
			require.ErrorAs(t, err, &extErr)
			assert.Equal(t, "options", extErr.Phase)
			assert.NoDirExists(t, tt.outputDir)
		})
	}
}

func TestExtractKeepTemp(t *testing.T) {
	path := writeWorkbook(t, map[string]string{"xl/worksheets/sheet1.xml": testSheet})
	opts := testOptions(t, nil)
	opts.KeepTemp = true

	_, err := Extract(path, opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(opts.TempDir, "xl", "worksheets", "sheet1.xml"))
}

func TestExtractResetsOutputDir(t *testing.T) {
	path := writeWorkbook(t, map[string]string{"xl/worksheets/sheet1.xml": testSheet})
	opts := testOptions(t, nil)
	require.NoError(t, os.MkdirAll(opts.OutputDir, 0o755))
	stale := filepath.Join(opts.OutputDir, "stale.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := Extract(path, opts)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
}

func TestExtractExcelizeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A5", 1)
	f.SetCellValue(sheetName, "B5", "Alpha")
	f.SetCellValue(sheetName, "C5", "Beta")
	f.SetCellValue(sheetName, "A6", 2)
	f.SetCellValue(sheetName, "C6", "No chapter")

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))

	rep, err := Extract(path, testOptions(t, nil))
	require.NoError(t, err)

	require.Equal(t, 1, rep.TotalQuestions)
	assert.Equal(t, "Alpha_1", rep.Questions[0].UniqueID)
	assert.Equal(t, "Beta", rep.Questions[0].FullText)
	assert.Zero(t, rep.TotalImages)
}
