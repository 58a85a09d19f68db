package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GenderCodes maps source gender codes to labels
var GenderCodes = map[int]Gender{
	1: GenderMan,
	2: GenderWoman,
}

// DifficultyCodes maps source difficulty codes to labels; shared by both indicators
var DifficultyCodes = map[int]Difficulty{
	0: Absence,
	1: Presence,
}

// ColumnMap names the three source columns projected into a Record
type ColumnMap struct {
	Gender        string
	Memory        string
	Concentration string
}

// Columns returns the required column names in Record field order
func (c ColumnMap) Columns() []string {
	return []string{c.Gender, c.Memory, c.Concentration}
}

// Validate checks that the three names are set and distinct
func (c ColumnMap) Validate() error {
	seen := make(map[string]bool, 3)
	for _, name := range c.Columns() {
		if name == "" {
			return fmt.Errorf("%w: empty column name", ErrInvalidColumnMap)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidColumnMap, name)
		}
		seen[name] = true
	}
	return nil
}

// Missing returns the required columns absent from headers. Matching is case-sensitive.
func (c ColumnMap) Missing(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, name := range c.Columns() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// MapRow projects one raw row (column -> cell text) into a Record.
// Extra columns are ignored; unmapped codes become the Unknown category.
func (c ColumnMap) MapRow(row map[string]string) Record {
	return Record{
		Gender:        MapGender(row[c.Gender]),
		Memory:        MapDifficulty(row[c.Memory]),
		Concentration: MapDifficulty(row[c.Concentration]),
	}
}

// MapRows maps every raw row in order
func (c ColumnMap) MapRows(rows []map[string]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, c.MapRow(row))
	}
	return records
}

// MapGender resolves a gender cell, GenderUnknown when the code is not in GenderCodes
func MapGender(cell string) Gender {
	code, ok := ParseCode(cell)
	if !ok {
		return GenderUnknown
	}
	if g, ok := GenderCodes[code]; ok {
		return g
	}
	return GenderUnknown
}

// MapDifficulty resolves a difficulty cell, DifficultyUnknown when the code is not in DifficultyCodes
func MapDifficulty(cell string) Difficulty {
	code, ok := ParseCode(cell)
	if !ok {
		return DifficultyUnknown
	}
	if d, ok := DifficultyCodes[code]; ok {
		return d
	}
	return DifficultyUnknown
}

// ParseCode reads an integer code. Integral floats ("2.0") are accepted,
// since spreadsheet exports often write codes that way.
func ParseCode(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
