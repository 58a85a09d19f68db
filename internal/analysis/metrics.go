// Package analysis computes the dashboard's summary numbers from a survey table.
//
// Every function here is pure: it reads the table it is given and returns new
// values, so calling it twice on the same table yields identical results.
package analysis

import (
	"fmt"

	"cogdash/domain/survey"

	"github.com/montanaflynn/stats"
)

// Metrics is the headline panel, always computed over the full table.
type Metrics struct {
	Total    int     `json:"total"`
	Women    int     `json:"women"`
	Men      int     `json:"men"`
	Unknown  int     `json:"unknown"`
	WomenPct float64 `json:"women_pct"`
	MenPct   float64 `json:"men_pct"`
}

// ComputeMetrics counts respondents per gender. Percentages are count/total*100
// and are zero when the table is empty.
func ComputeMetrics(t *survey.Table) Metrics {
	m := Metrics{
		Total: t.Len(),
		Women: t.CountGender(survey.GenderWoman),
		Men:   t.CountGender(survey.GenderMan),
	}
	m.Unknown = m.Total - m.Women - m.Men
	m.WomenPct = percent(m.Women, m.Total)
	m.MenPct = percent(m.Men, m.Total)
	return m
}

// WomenDisplay is the women percentage rounded to one decimal, e.g. "50.0%"
func (m Metrics) WomenDisplay() string {
	return FormatPercent(m.WomenPct)
}

// MenDisplay is the men percentage rounded to one decimal
func (m Metrics) MenDisplay() string {
	return FormatPercent(m.MenPct)
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	r, err := stats.Round(v, 1)
	if err != nil {
		return v
	}
	return r
}

// FormatPercent renders v with one decimal and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", Round1(v))
}
