package dataset

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"
	"cogdash/internal/errors"
	"cogdash/internal/testkit"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `Id,Genero,Edad,Dificultadrecordando,Dificultadconcetracion
1,1,31,0,1
2,2,22,1,0
3,1,45,1,1
4,2,38,0,0
`

func columns() survey.ColumnMap {
	return survey.ColumnMap{Gender: "Genero", Memory: "Dificultadrecordando", Concentration: "Dificultadconcetracion"}
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeSource(t, "CopiaAnalisis.csv", fixtureCSV)

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, table.Source())
	assert.Equal(t, []survey.Record{
		{Gender: survey.GenderMan, Memory: survey.Absence, Concentration: survey.Presence},
		{Gender: survey.GenderWoman, Memory: survey.Presence, Concentration: survey.Absence},
		{Gender: survey.GenderMan, Memory: survey.Presence, Concentration: survey.Presence},
		{Gender: survey.GenderWoman, Memory: survey.Absence, Concentration: survey.Absence},
	}, table.Records())
}

func TestLoadUnknownCodes(t *testing.T) {
	path := writeSource(t, "data.csv", "Genero,Dificultadrecordando,Dificultadconcetracion\n3,0,1\n2,,7\n")

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, survey.GenderUnknown, table.At(0).Gender)
	assert.Equal(t, survey.DifficultyUnknown, table.At(1).Memory)
	assert.Equal(t, survey.DifficultyUnknown, table.At(1).Concentration)
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeSource(t, "data.csv", "Genero,Dificultadrecordando\n1,0\n")

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.IsLoadError(err))
	assert.True(t, stderrors.Is(err, survey.ErrMissingColumns))
	assert.Contains(t, err.Error(), "Dificultadconcetracion")
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "CopiaAnalisis.csv") }},
		{"malformed csv", func(t *testing.T) string {
			return writeSource(t, "bad.csv", "Genero,Dificultadrecordando,Dificultadconcetracion\n1,0\n")
		}},
		{"empty file", func(t *testing.T) string { return writeSource(t, "empty.csv", "") }},
		{"unsupported type", func(t *testing.T) string { return writeSource(t, "data.json", "[]") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewLoader(Source{Path: tt.path(t)}, columns()).Load(context.Background())
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Equal(t, errors.CodeLoadError, errors.GetCode(err))
		})
	}
}

func TestLoadInvalidColumnMap(t *testing.T) {
	path := writeSource(t, "data.csv", fixtureCSV)
	cols := survey.ColumnMap{Gender: "Genero", Memory: "Genero", Concentration: "Dificultadconcetracion"}

	_, err := NewLoader(Source{Path: path}, cols).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.True(t, stderrors.Is(err, survey.ErrInvalidColumnMap))
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeSource(t, "data.csv", "Genero,Dificultadrecordando,Dificultadconcetracion\n")

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.sqlite")
	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	db.MustExec(`CREATE TABLE encuesta (Genero INTEGER, Dificultadrecordando INTEGER, Dificultadconcetracion INTEGER)`)
	db.MustExec(`INSERT INTO encuesta VALUES (1, 0, 1), (2, 1, 0)`)
	require.NoError(t, db.Close())

	table, err := NewLoader(Source{Path: path, Table: "encuesta"}, columns()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, survey.GenderWoman, table.At(1).Gender)
	assert.Equal(t, survey.Presence, table.At(1).Memory)
}

func TestLoadIsRepeatable(t *testing.T) {
	path := writeSource(t, "data.csv", fixtureCSV)
	loader := NewLoader(Source{Path: path}, columns())

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	second, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
	assert.NotSame(t, first, second)
}

func TestLoadGeneratedSurvey(t *testing.T) {
	cfg := testkit.DefaultSurveyConfig()
	cfg.Respondents = 500
	path := filepath.Join(t.TempDir(), "generated.csv")
	require.NoError(t, testkit.NewSurveyGenerator(cfg).WriteCSVFile(path))

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 500, table.Len())

	m := analysis.ComputeMetrics(table)
	assert.Equal(t, 500, m.Women+m.Men)
	assert.InDelta(t, 100, m.WomenPct+m.MenPct, 1e-9)

	for _, row := range analysis.AggregateConcentration(table).Rows {
		sum := 0.0
		for _, p := range row.Percent {
			sum += p
		}
		assert.InDelta(t, 100, sum, 1e-9)
	}
}

func TestLoadGeneratedSurveyWithInvalidCodes(t *testing.T) {
	cfg := testkit.DefaultSurveyConfig()
	cfg.InvalidCodeRate = 0.1
	path := filepath.Join(t.TempDir(), "generated.csv")
	require.NoError(t, testkit.NewSurveyGenerator(cfg).WriteCSVFile(path))

	table, err := NewLoader(Source{Path: path}, columns()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Respondents, table.Len())

	m := analysis.ComputeMetrics(table)
	assert.Positive(t, m.Unknown)
	assert.Less(t, m.WomenPct+m.MenPct, 100.0)
}
