package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"seoreport/internal/report"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

// NewPage 根据派生指标组装图表页：排名分布、搜索意图、周期趋势。
func NewPage(m report.Metrics) *components.Page {
	page := components.NewPage()
	page.PageTitle = pageTitle(m)
	page.AddCharts(positionBar(m), intentPie(m), trendBar(m))
	return page
}

// Render 将图表页写为 HTML。
func Render(w io.Writer, m report.Metrics) error {
	if err := NewPage(m).Render(w); err != nil {
		return fmt.Errorf("渲染图表失败: %w", err)
	}
	return nil
}

func pageTitle(m report.Metrics) string {
	target := m.Target
	if target == "" {
		target = "Unknown Website"
	}
	if m.ReportPeriod == "" {
		return target
	}
	return target + " | " + m.ReportPeriod
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight})
}

func positionBar(m report.Metrics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Position Distribution", Subtitle: m.Target}),
	)
	p := m.Positions
	bar.SetXAxis([]string{"Top 3", "4-10", "Page 2", "Page 3", "Page 4+"}).
		AddSeries("Keywords", []opts.BarData{
			{Value: p.Top3}, {Value: p.Top10}, {Value: p.Page2}, {Value: p.Page3}, {Value: p.Page4Plus},
		})
	return bar
}

func intentPie(m report.Metrics) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Search Intent"}),
	)
	data := make([]opts.PieData, 0, len(m.Intents))
	for _, s := range m.Intents {
		data = append(data, opts.PieData{Name: s.Label, Value: s.Count})
	}
	pie.AddSeries("Intent", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie
}

func trendBar(m report.Metrics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Period Change (%)", Subtitle: fmt.Sprintf("Health score %.0f · %s", m.HealthScore, m.HealthStatus)}),
	)
	bar.SetXAxis([]string{"Traffic Value", "Keywords", "Backlinks", "Referring Domains"}).
		AddSeries("Change", []opts.BarData{
			{Value: m.Traffic.Percent},
			{Value: m.Keywords.Percent},
			{Value: m.Backlinks.Percent},
			{Value: m.ReferringDomains.Percent},
		})
	return bar
}
