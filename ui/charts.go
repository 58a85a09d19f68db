package ui

import (
	"html/template"

	"cogdash/domain/survey"
	"cogdash/internal/analysis"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

// EChartsAsset is the script every chart snippet depends on
const EChartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// CategoryColors is the fixed colour of each difficulty category, shared by all charts
var CategoryColors = map[survey.Difficulty]string{
	survey.Absence:           "#dffd6e",
	survey.Presence:          "#ffad61",
	survey.DifficultyUnknown: "#c0c0c0",
}

const (
	textColor       = "#000000"
	backgroundColor = "#ffffff"
)

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// renderSnippet renders just the chart div and its script
func renderSnippet(c snippetRenderer) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + "\n" + s.Script)
}

// buildConcentrationChart draws the grouped bar chart: genders on the x axis,
// one coloured series per difficulty category, one-decimal percent labels.
func buildConcentrationChart(agg analysis.ConcentrationAggregation) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         "concentration-chart",
			Width:           "100%",
			Height:          "420px",
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      "Concentration difficulty percentage",
			TitleStyle: &opts.TextStyle{Color: textColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Gender", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Percentage",
			Type:      "value",
			Max:       100,
			AxisLabel: &opts.AxisLabel{Formatter: "{value}%"},
		}),
	)

	genders := make([]string, 0, len(agg.Rows))
	for _, row := range agg.Rows {
		genders = append(genders, string(row.Gender))
	}
	bar.SetXAxis(genders)

	for i, category := range agg.Categories {
		data := make([]opts.BarData, 0, len(agg.Rows))
		for _, row := range agg.Rows {
			// echarts drops trailing zeros from {c}, so each bar carries its own text
			data = append(data, opts.BarData{
				Value: analysis.Round1(row.Percent[i]),
				Label: &opts.Label{
					Show:      opts.Bool(true),
					Position:  "top",
					Color:     textColor,
					Formatter: analysis.FormatPercent(row.Percent[i]),
				},
			})
		}
		bar.AddSeries(string(category), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: CategoryColors[category]}),
		)
	}
	return bar
}

// buildRecallChart draws one gender's memory-difficulty pie with name and
// percent inside each slice.
func buildRecallChart(series analysis.RecallSeries, title string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         "recall-chart-" + string(series.Gender),
			Width:           "100%",
			Height:          "360px",
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      title,
			Left:       "center",
			TitleStyle: &opts.TextStyle{Color: textColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	items := make([]opts.PieData, 0, len(series.Counts))
	for _, c := range series.Counts {
		items = append(items, opts.PieData{
			Name:      string(c.Category),
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: CategoryColors[c.Category]},
		})
	}

	pie.AddSeries("Memory recall difficulty", items,
		charts.WithPieChartOpts(opts.PieChart{Radius: "70%"}),
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "inside",
			Color:     textColor,
			Formatter: "{b}\n{d}%",
		}),
	)
	return pie
}
