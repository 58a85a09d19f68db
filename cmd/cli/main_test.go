package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func writeData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CopiaAnalisis.csv")
	require.NoError(t, os.WriteFile(path, []byte("Genero,Dificultadrecordando,Dificultadconcetracion\n1,0,1\n2,1,0\n1,1,1\n2,0,0\n"), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	t.Setenv("DATA_FILE", writeData(t))

	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "has 4 records")
}

func TestCheckLoadError(t *testing.T) {
	t.Setenv("DATA_FILE", filepath.Join(t.TempDir(), "missing.csv"))

	_, err := run(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load data file")
}

func TestSummaryCommand(t *testing.T) {
	t.Setenv("DATA_FILE", writeData(t))

	out, err := run(t, "summary", "--filter", "men")
	require.NoError(t, err)
	assert.Contains(t, out, "Metrics")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "Data for Men")
}

func TestSummaryRejectsUnknownFilter(t *testing.T) {
	t.Setenv("DATA_FILE", writeData(t))

	_, err := run(t, "summary", "--filter", "everyone")
	assert.ErrorIs(t, err, survey.ErrUnknownFilter)
}

func TestPrintSummaryWithoutFilter(t *testing.T) {
	table := survey.NewTable("t.csv", []survey.Record{
		{Gender: survey.GenderWoman, Memory: survey.Presence, Concentration: survey.Absence},
	})

	var out bytes.Buffer
	require.NoError(t, printSummary(&out, analysis.Summarize(table, survey.FilterNone)))

	text := out.String()
	assert.Contains(t, text, "Concentration difficulty percentage")
	assert.Contains(t, text, "Memory recall difficulty")
	assert.False(t, strings.Contains(text, "Data for"))
}
