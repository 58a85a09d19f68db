package ui

import (
	"html/template"
	"net/url"
	"strconv"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"
)

// PageOptions is the static text around the computed sections
type PageOptions struct {
	Title          string
	FooterMarkdown string
}

// Button is one filter trigger
type Button struct {
	Label  string
	Href   string
	Active bool
}

// MetricCard is one headline number
type MetricCard struct {
	Label string
	Value string
}

// PieSection is one gender's recall chart. Empty is set when the gender has
// no respondents and nothing is drawn.
type PieSection struct {
	Title string
	Chart template.HTML
	Empty bool
}

// Page is everything the dashboard template shows for one render cycle
type Page struct {
	Title        string
	Filter       survey.Filter
	Buttons      []Button
	Metrics      []MetricCard
	BarChart     template.HTML
	BarEmpty     bool
	PieTitle     string
	Pies         []PieSection
	Table        analysis.TableView
	Footer       template.HTML
	EChartsAsset string
	RequestID    string
}

// Render builds the page for table under filter. It has no side effects: the
// same table and filter always give the same page.
func Render(table *survey.Table, filter survey.Filter, o PageOptions) *Page {
	summary := analysis.Summarize(table, filter)

	page := &Page{
		Title:        o.Title,
		Filter:       filter,
		Buttons:      filterButtons(filter),
		Metrics:      metricCards(summary.Metrics),
		BarChart:     renderSnippet(buildConcentrationChart(summary.Concentration)),
		BarEmpty:     len(summary.Concentration.Rows) == 0,
		PieTitle:     "Memory recall difficulty percentage",
		Table:        summary.Table,
		Footer:       renderMarkdown(o.FooterMarkdown),
		EChartsAsset: EChartsAsset,
	}

	for _, series := range summary.Recall {
		section := PieSection{Title: pieTitle(series.Gender), Empty: series.Total == 0}
		if !section.Empty {
			section.Chart = renderSnippet(buildRecallChart(series, section.Title))
		}
		page.Pies = append(page.Pies, section)
	}
	return page
}

func filterButtons(active survey.Filter) []Button {
	buttons := make([]Button, 0, len(survey.Filters)+1)
	for _, f := range survey.Filters {
		buttons = append(buttons, Button{Label: f.Label(), Href: filterHref(f), Active: f == active})
	}
	return append(buttons, Button{Label: survey.FilterNone.Label(), Href: filterHref(survey.FilterNone), Active: !active.Active()})
}

func filterHref(f survey.Filter) string {
	if !f.Active() {
		return "/"
	}
	return "/?" + url.Values{"filter": {f.String()}}.Encode()
}

func metricCards(m analysis.Metrics) []MetricCard {
	return []MetricCard{
		{Label: "Total participants", Value: strconv.Itoa(m.Total)},
		{Label: "% Women", Value: m.WomenDisplay()},
		{Label: "% Men", Value: m.MenDisplay()},
	}
}

func pieTitle(g survey.Gender) string {
	if g == survey.GenderWoman {
		return "Women"
	}
	return "Men"
}
