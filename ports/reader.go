package ports

import (
	"context"

	"cogdash/domain/survey"
)

// RawRow is one source row as column name -> cell text
type RawRow map[string]string

// RawData is the untyped content of a source file
type RawData struct {
	Headers []string
	Rows    []RawRow
}

// SourceReader reads a whole source file in one read-only pass.
// Implementations release the file before returning, on success or failure.
type SourceReader interface {
	ReadData(ctx context.Context) (*RawData, error)
}

// TableLoader produces a fully mapped table for one render cycle, or a LOAD_ERROR
type TableLoader interface {
	Load(ctx context.Context) (*survey.Table, error)
}
