package analysis

import (
	"sort"

	"cogdash/domain/survey"
)

// CategoryCount is one pie slice
type CategoryCount struct {
	Category survey.Difficulty `json:"category"`
	Count    int               `json:"count"`
}

// RecallSeries holds the memory-difficulty value counts of one gender.
type RecallSeries struct {
	Gender survey.Gender   `json:"gender"`
	Total  int             `json:"total"`
	Counts []CategoryCount `json:"counts"`
}

// recallOrder is the pie order: women on the left, men on the right.
var recallOrder = []survey.Gender{survey.GenderWoman, survey.GenderMan}

// AggregateRecall counts memory-difficulty categories separately for each
// gender view. Slices are ordered by descending count, ties by category order,
// and categories with no records are omitted.
func AggregateRecall(t *survey.Table) []RecallSeries {
	series := make([]RecallSeries, 0, len(recallOrder))
	for _, g := range recallOrder {
		series = append(series, valueCounts(g, t.ByGender(g)))
	}
	return series
}

func valueCounts(g survey.Gender, view *survey.Table) RecallSeries {
	counts := make(map[survey.Difficulty]int, len(survey.Difficulties))
	for _, r := range view.Records() {
		counts[r.Memory]++
	}

	s := RecallSeries{Gender: g, Total: view.Len()}
	for _, c := range survey.Difficulties {
		if counts[c] > 0 {
			s.Counts = append(s.Counts, CategoryCount{Category: c, Count: counts[c]})
		}
	}
	sort.SliceStable(s.Counts, func(i, j int) bool {
		return s.Counts[i].Count > s.Counts[j].Count
	})
	return s
}

// Count returns the number of records in category c
func (s RecallSeries) Count(c survey.Difficulty) int {
	for _, cc := range s.Counts {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

// Share returns the slice percentage of category c, 0 for an empty series.
func (s RecallSeries) Share(c survey.Difficulty) float64 {
	return percent(s.Count(c), s.Total)
}
