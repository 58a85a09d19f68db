package analysis

import (
	"cogdash/domain/survey"
)

// TableView is the optional filtered listing. Visible is false when no
// filter is active, in which case nothing is listed.
type TableView struct {
	Visible bool            `json:"visible"`
	Heading string          `json:"heading,omitempty"`
	Records []survey.Record `json:"records"`
}

// FilteredView projects the filter-restricted records of t
func FilteredView(t *survey.Table, f survey.Filter) TableView {
	if !f.Active() {
		return TableView{Records: []survey.Record{}}
	}
	return TableView{
		Visible: true,
		Heading: "Data for " + f.Label(),
		Records: f.Apply(t).Records(),
	}
}

// Summary bundles everything one render cycle shows.
type Summary struct {
	Filter        string                   `json:"filter"`
	Metrics       Metrics                  `json:"metrics"`
	Concentration ConcentrationAggregation `json:"concentration"`
	Recall        []RecallSeries           `json:"recall"`
	Table         TableView                `json:"table"`
}

// Summarize computes the dashboard numbers. The metrics and both charts use
// the full table; only the listing follows the filter.
func Summarize(t *survey.Table, f survey.Filter) Summary {
	return Summary{
		Filter:        f.String(),
		Metrics:       ComputeMetrics(t),
		Concentration: AggregateConcentration(t),
		Recall:        AggregateRecall(t),
		Table:         FilteredView(t, f),
	}
}
