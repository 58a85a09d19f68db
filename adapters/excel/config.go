package excel

import (
	"path/filepath"
	"strings"
)

// File types understood by DataReader
const (
	FileTypeCSV  = "csv"
	FileTypeTSV  = "tsv"
	FileTypeXLSX = "xlsx"
)

// ReaderConfig holds configuration for a spreadsheet data source
type ReaderConfig struct {
	FilePath string
	Sheet    string // xlsx only; empty selects the first sheet
}

// DefaultReaderConfig returns the settings used when only a path is known
func DefaultReaderConfig(filePath string) ReaderConfig {
	return ReaderConfig{FilePath: filePath}
}

// DetectFileType maps a file extension to a reader file type, "" when unsupported
func DetectFileType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return FileTypeCSV
	case ".tsv", ".tab":
		return FileTypeTSV
	case ".xlsx", ".xlsm":
		return FileTypeXLSX
	default:
		return ""
	}
}
