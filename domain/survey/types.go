// Package survey holds the respondent table the dashboard is computed from.
package survey

// Gender is the human-readable gender label of a respondent
type Gender string

const (
	GenderMan     Gender = "Man"
	GenderWoman   Gender = "Woman"
	GenderUnknown Gender = "Unknown"
)

// Genders lists the charted genders in axis order.
var Genders = []Gender{GenderMan, GenderWoman}

// Difficulty is the label of a binary self-reported difficulty indicator
type Difficulty string

const (
	Absence           Difficulty = "Absence"
	Presence          Difficulty = "Presence"
	DifficultyUnknown Difficulty = "Unknown"
)

// Difficulties lists every difficulty category in display order, Unknown last.
var Difficulties = []Difficulty{Absence, Presence, DifficultyUnknown}

// Record is one respondent row after code mapping
type Record struct {
	Gender        Gender     `json:"gender"`
	Memory        Difficulty `json:"memory_difficulty"`
	Concentration Difficulty `json:"concentration_difficulty"`
}

// Table is an ordered, read-only sequence of records for one render cycle.
// Derived views never share the backing slice with their parent.
type Table struct {
	source  string
	records []Record
}

// NewTable copies records into a new table
func NewTable(source string, records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{source: source, records: cp}
}

// Source returns the path the table was loaded from
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of all records in order
func (t *Table) Records() []Record {
	cp := make([]Record, t.Len())
	if t != nil {
		copy(cp, t.records)
	}
	return cp
}

// Where returns the records matching pred as a new table, preserving order
func (t *Table) Where(pred func(Record) bool) *Table {
	out := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if pred(t.records[i]) {
			out = append(out, t.records[i])
		}
	}
	return &Table{source: t.Source(), records: out}
}

// ByGender returns the gender-restricted view
func (t *Table) ByGender(g Gender) *Table {
	return t.Where(func(r Record) bool { return r.Gender == g })
}

// CountGender counts records with gender g
func (t *Table) CountGender(g Gender) int {
	n := 0
	for i := 0; i < t.Len(); i++ {
		if t.records[i].Gender == g {
			n++
		}
	}
	return n
}
