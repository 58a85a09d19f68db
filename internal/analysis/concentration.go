package analysis

import (
	"cogdash/domain/survey"

	"gonum.org/v1/gonum/floats"
)

// ConcentrationRow is one gender's concentration-difficulty breakdown.
// Counts and Percent are indexed like ConcentrationAggregation.Categories.
type ConcentrationRow struct {
	Gender  survey.Gender `json:"gender"`
	Total   int           `json:"total"`
	Counts  []int         `json:"counts"`
	Percent []float64     `json:"percent"`
}

// ConcentrationAggregation is the grouped bar chart data: gender on the x axis,
// one series per difficulty category.
type ConcentrationAggregation struct {
	Categories []survey.Difficulty `json:"categories"`
	Rows       []ConcentrationRow  `json:"rows"`
}

// AggregateConcentration groups t by (gender, concentration difficulty) and
// converts every gender row to percentages of that row's total. Genders with
// no records are left out; Unknown difficulty is a category only when some
// record carries it.
func AggregateConcentration(t *survey.Table) ConcentrationAggregation {
	categories := presentCategories(t, func(r survey.Record) survey.Difficulty { return r.Concentration })
	index := make(map[survey.Difficulty]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}

	agg := ConcentrationAggregation{Categories: categories}
	for _, g := range survey.Genders {
		counts := make([]float64, len(categories))
		for _, r := range t.ByGender(g).Records() {
			counts[index[r.Concentration]]++
		}

		total := floats.Sum(counts)
		if total == 0 {
			continue
		}

		row := ConcentrationRow{
			Gender:  g,
			Total:   int(total),
			Counts:  make([]int, len(counts)),
			Percent: make([]float64, len(counts)),
		}
		for i, c := range counts {
			row.Counts[i] = int(c)
		}
		copy(row.Percent, counts)
		floats.Scale(100/total, row.Percent)
		agg.Rows = append(agg.Rows, row)
	}
	return agg
}

// Row returns the breakdown for gender g
func (a ConcentrationAggregation) Row(g survey.Gender) (ConcentrationRow, bool) {
	for _, row := range a.Rows {
		if row.Gender == g {
			return row, true
		}
	}
	return ConcentrationRow{}, false
}

// Percentage returns the share of category c within gender g, 0 if either is absent.
func (a ConcentrationAggregation) Percentage(g survey.Gender, c survey.Difficulty) float64 {
	row, ok := a.Row(g)
	if !ok {
		return 0
	}
	for i, cat := range a.Categories {
		if cat == c {
			return row.Percent[i]
		}
	}
	return 0
}

// presentCategories returns Absence and Presence, plus Unknown when a charted
// record carries it.
func presentCategories(t *survey.Table, field func(survey.Record) survey.Difficulty) []survey.Difficulty {
	categories := []survey.Difficulty{survey.Absence, survey.Presence}
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.Gender != survey.GenderUnknown && field(r) == survey.DifficultyUnknown {
			return append(categories, survey.DifficultyUnknown)
		}
	}
	return categories
}
