// Package dataset turns the configured source file into a mapped survey table.
package dataset

import (
	"context"
	"fmt"
	"time"

	"cogdash/adapters/excel"
	"cogdash/adapters/sqlite"
	"cogdash/domain/survey"
	"cogdash/internal"
	"cogdash/internal/errors"
	"cogdash/ports"
)

// Source describes where the respondent data lives
type Source struct {
	Path  string
	Sheet string // workbooks
	Table string // SQLite files
}

// Loader reads the source once per call. It keeps no state between calls.
type Loader struct {
	source  Source
	columns survey.ColumnMap
	log     *internal.Logger
}

// NewLoader creates a loader for source projecting the given columns
func NewLoader(source Source, columns survey.ColumnMap) *Loader {
	return &Loader{
		source:  source,
		columns: columns,
		log:     internal.DefaultLogger.With("Loader"),
	}
}

// Load reads, projects and maps the source file. Any failure, including a
// header without the required columns, is returned as a LOAD_ERROR and no
// partial table is produced.
func (l *Loader) Load(ctx context.Context) (*survey.Table, error) {
	start := time.Now()

	if err := l.columns.Validate(); err != nil {
		return nil, errors.LoadError(l.source.Path, err)
	}

	reader, err := l.readerFor()
	if err != nil {
		return nil, errors.LoadError(l.source.Path, err)
	}

	data, err := reader.ReadData(ctx)
	if err != nil {
		l.log.Error("Reading %s failed: %v", l.source.Path, err)
		return nil, errors.LoadError(l.source.Path, err)
	}

	if missing := l.columns.Missing(data.Headers); len(missing) > 0 {
		err := survey.NewMissingColumnsError(missing)
		l.log.Error("Rejecting %s: %v", l.source.Path, err)
		return nil, errors.LoadError(l.source.Path, err)
	}

	table := survey.NewTable(l.source.Path, l.mapRows(data.Rows))
	l.log.Info("Loaded %d records from %s in %s", table.Len(), l.source.Path, time.Since(start).Round(time.Microsecond))
	return table, nil
}

func (l *Loader) mapRows(rows []ports.RawRow) []survey.Record {
	records := make([]survey.Record, 0, len(rows))
	unknown := 0
	for _, row := range rows {
		rec := l.columns.MapRow(row)
		if rec.Gender == survey.GenderUnknown || rec.Memory == survey.DifficultyUnknown || rec.Concentration == survey.DifficultyUnknown {
			unknown++
		}
		records = append(records, rec)
	}
	if unknown > 0 {
		l.log.Warn("%d of %d rows carry codes outside the known mappings; shown as Unknown", unknown, len(rows))
	}
	return records
}

func (l *Loader) readerFor() (ports.SourceReader, error) {
	if sqlite.IsSQLiteFile(l.source.Path) {
		return sqlite.NewTableReader(l.source.Path, l.source.Table), nil
	}
	if excel.DetectFileType(l.source.Path) == "" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .csv, .tsv, .xlsx, .db or .sqlite)", l.source.Path)
	}
	return excel.NewDataReader(excel.ReaderConfig{FilePath: l.source.Path, Sheet: l.source.Sheet}), nil
}
