// Package testkit generates synthetic survey sources for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
)

// SurveyGeneratorConfig configures the synthetic respondent generator
type SurveyGeneratorConfig struct {
	Respondents int     `json:"respondents"`
	WomenShare  float64 `json:"women_share"`
	// Presence rates per gender and indicator
	WomenMemoryRate        float64 `json:"women_memory_rate"`
	MenMemoryRate          float64 `json:"men_memory_rate"`
	WomenConcentrationRate float64 `json:"women_concentration_rate"`
	MenConcentrationRate   float64 `json:"men_concentration_rate"`
	// Share of cells replaced by a code outside the known mappings
	InvalidCodeRate float64 `json:"invalid_code_rate"`
	Seed            int64   `json:"seed"`
}

// DefaultSurveyConfig returns defaults shaped like the real survey export
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Respondents:            250,
		WomenShare:             0.55,
		WomenMemoryRate:        0.42,
		MenMemoryRate:          0.35,
		WomenConcentrationRate: 0.38,
		MenConcentrationRate:   0.31,
		Seed:                   42,
	}
}

// Columns is the header written by the generator. Only the three coded
// columns are read by the dashboard; the rest mimic the export's extra fields.
var Columns = []string{"Id", "Edad", "Genero", "Dificultadrecordando", "Dificultadconcetracion", "Carrera"}

var careers = []string{"Psicologia", "Medicina", "Derecho", "Ingenieria", "Economia"}

// SurveyGenerator produces deterministic respondent rows from a seed
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a new survey generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Rows generates every respondent as raw cell text, header excluded
func (g *SurveyGenerator) Rows() [][]string {
	rows := make([][]string, 0, g.config.Respondents)
	for i := 0; i < g.config.Respondents; i++ {
		rows = append(rows, g.respondent(i+1))
	}
	return rows
}

func (g *SurveyGenerator) respondent(id int) []string {
	gender, memoryRate, concentrationRate := 1, g.config.MenMemoryRate, g.config.MenConcentrationRate
	if g.rng.Float64() < g.config.WomenShare {
		gender, memoryRate, concentrationRate = 2, g.config.WomenMemoryRate, g.config.WomenConcentrationRate
	}

	return []string{
		strconv.Itoa(id),
		strconv.Itoa(18 + g.rng.Intn(40)),
		g.code(gender),
		g.code(g.bernoulli(memoryRate)),
		g.code(g.bernoulli(concentrationRate)),
		careers[g.rng.Intn(len(careers))],
	}
}

func (g *SurveyGenerator) bernoulli(p float64) int {
	if g.rng.Float64() < p {
		return 1
	}
	return 0
}

// code renders v, occasionally replaced by an out-of-domain code
func (g *SurveyGenerator) code(v int) string {
	if g.config.InvalidCodeRate > 0 && g.rng.Float64() < g.config.InvalidCodeRate {
		return "9"
	}
	return strconv.Itoa(v)
}

// WriteCSV writes the header and all rows as CSV
func (g *SurveyGenerator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(g.Rows()); err != nil {
		return fmt.Errorf("failed to write survey rows: %w", err)
	}
	return nil
}

// WriteCSVFile writes the generated survey to path
func (g *SurveyGenerator) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
