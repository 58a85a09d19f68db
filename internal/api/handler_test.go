package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"
	"cogdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	table *survey.Table
	err   error
	calls int
}

func (s *stubLoader) Load(ctx context.Context) (*survey.Table, error) {
	s.calls++
	return s.table, s.err
}

func fixture() *survey.Table {
	return survey.NewTable("fixture.csv", []survey.Record{
		{Gender: survey.GenderMan, Memory: survey.Absence, Concentration: survey.Presence},
		{Gender: survey.GenderWoman, Memory: survey.Presence, Concentration: survey.Absence},
		{Gender: survey.GenderMan, Memory: survey.Presence, Concentration: survey.Presence},
		{Gender: survey.GenderWoman, Memory: survey.Absence, Concentration: survey.Absence},
	})
}

func serve(t *testing.T, loader *stubLoader, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewHandler(loader, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSummary(t *testing.T) {
	loader := &stubLoader{table: fixture()}
	rec := serve(t, loader, "/api/summary?filter=women")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body analysis.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "women", body.Filter)
	assert.Equal(t, 4, body.Metrics.Total)
	assert.Equal(t, 50.0, body.Metrics.WomenPct)
	assert.Equal(t, 100.0, body.Concentration.Percentage(survey.GenderMan, survey.Presence))
	require.Len(t, body.Recall, 2)
	assert.Equal(t, survey.GenderWoman, body.Recall[0].Gender)
	assert.True(t, body.Table.Visible)
	assert.Len(t, body.Table.Records, 2)
	assert.Equal(t, 1, loader.calls)
}

func TestRecords(t *testing.T) {
	tests := []struct {
		target string
		filter string
		count  int
	}{
		{"/api/records", "", 4},
		{"/api/records?filter=men", "men", 2},
		{"/api/records?filter=Women", "women", 2},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, &stubLoader{table: fixture()}, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)

			var body RecordsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.filter, body.Filter)
			assert.Equal(t, tt.count, body.Count)
			assert.Len(t, body.Records, tt.count)
		})
	}
}

func TestUnknownFilter(t *testing.T) {
	loader := &stubLoader{table: fixture()}
	rec := serve(t, loader, "/api/summary?filter=both")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeInvalidInput, body.Code)
	assert.Zero(t, loader.calls)
}

func TestLoadFailure(t *testing.T) {
	loader := &stubLoader{err: errors.LoadError("CopiaAnalisis.csv", stderrors.New("no such file"))}
	rec := serve(t, loader, "/api/records")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeLoadError, body.Code)
	assert.Contains(t, body.Error, "no such file")
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(t, &stubLoader{table: fixture()}, "/api/export")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
