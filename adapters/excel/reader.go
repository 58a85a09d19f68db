package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"cogdash/internal"
	"cogdash/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and delimited text files
type DataReader struct {
	config   ReaderConfig
	fileType string
	log      *internal.Logger
}

// NewDataReader creates a reader for the file type implied by the path extension
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config:   config,
		fileType: DetectFileType(config.FilePath),
		log:      internal.DefaultLogger.With("DataReader"),
	}
}

// ReadData reads the whole file into headers and raw rows
func (r *DataReader) ReadData(ctx context.Context) (*ports.RawData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.log.Debug("Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); err != nil {
		return nil, fmt.Errorf("%s file not accessible: %w", strings.ToUpper(r.fileType), err)
	}

	switch r.fileType {
	case FileTypeCSV:
		return r.readDelimited(',')
	case FileTypeTSV:
		return r.readDelimited('\t')
	case FileTypeXLSX:
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.config.FilePath)
	}
}

// readExcelData reads the configured sheet (or the first one) of a workbook
func (r *DataReader) readExcelData() (*ports.RawData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	r.log.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readDelimited reads CSV/TSV data; rows with a wrong field count are a read error
func (r *DataReader) readDelimited(comma rune) (*ports.RawData, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(r.fileType), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", strings.ToUpper(r.fileType), err)
	}
	r.log.Debug("%s file read in %.2fms (%d rows)", strings.ToUpper(r.fileType), float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into RawData; a header row is required
func (r *DataReader) processRows(rows [][]string) (*ports.RawData, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s file is empty: a header row is required", strings.ToUpper(r.fileType))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		// Excel and some CSV exports prefix the first header with a BOM
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]ports.RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rowData := make(ports.RawRow, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.log.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ports.RawData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
