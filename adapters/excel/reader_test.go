package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "\ufeffGenero,Dificultadrecordando, Dificultadconcetracion\n1,0,1\n2, 1 ,0\n\n")

	data, err := NewDataReader(DefaultReaderConfig(path)).ReadData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Genero", "Dificultadrecordando", "Dificultadconcetracion"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "1", data.Rows[1]["Dificultadrecordando"])
	assert.Equal(t, "2", data.Rows[1]["Genero"])
}

func TestReadTSV(t *testing.T) {
	path := writeFile(t, "data.tsv", "a\tb\n1\t2\n")

	data, err := NewDataReader(DefaultReaderConfig(path)).ReadData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "2", data.Rows[0]["b"])
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeFile(t, "data.csv", "Genero,Dificultadrecordando,Dificultadconcetracion\n")

	data, err := NewDataReader(DefaultReaderConfig(path)).ReadData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Headers, 3)
	assert.Empty(t, data.Rows)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"empty file", func(t *testing.T) string { return writeFile(t, "empty.csv", "") }},
		{"ragged rows", func(t *testing.T) string { return writeFile(t, "ragged.csv", "a,b,c\n1,2\n") }},
		{"unterminated quote", func(t *testing.T) string { return writeFile(t, "quote.csv", "a,b\n\"1,2\n") }},
		{"unsupported extension", func(t *testing.T) string { return writeFile(t, "data.json", "{}") }},
		{"corrupt workbook", func(t *testing.T) string { return writeFile(t, "data.xlsx", "not a zip") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader(DefaultReaderConfig(tt.path(t))).ReadData(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestReadCancelledContext(t *testing.T) {
	path := writeFile(t, "data.csv", "a\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(DefaultReaderConfig(path)).ReadData(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Genero", "Dificultadrecordando", "Dificultadconcetracion", "Notas"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 0, 1, "first"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2, 1, 0}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := NewDataReader(DefaultReaderConfig(path)).ReadData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "1", data.Rows[0]["Genero"])
	assert.Equal(t, "first", data.Rows[0]["Notas"])
	assert.Equal(t, "", data.Rows[1]["Notas"])

	_, err = NewDataReader(ReaderConfig{FilePath: path, Sheet: "Missing"}).ReadData(context.Background())
	assert.Error(t, err)

	data, err = NewDataReader(ReaderConfig{FilePath: path}).ReadData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Rows, 2)
}

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, FileTypeCSV, DetectFileType("a/B.CSV"))
	assert.Equal(t, FileTypeTSV, DetectFileType("b.tsv"))
	assert.Equal(t, FileTypeXLSX, DetectFileType("c.xlsx"))
	assert.Equal(t, "", DetectFileType("d.parquet"))
}
