package report

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"seoreport/internal/pkg/format"
)

// RenderMetricsTable lays the derived figures out for terminals and logs.
func RenderMetricsTable(m Metrics) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(orDefault(m.Target, unknownWebsite) + " | " + m.ReportPeriod)
	t.AppendHeader(table.Row{"Metric", "Value", "Detail"})
	t.AppendRows([]table.Row{
		{"Traffic Trend", m.Traffic.String(), trendDetail(m.Traffic)},
		{"Keyword Trend", m.Keywords.String(), trendDetail(m.Keywords)},
		{"Backlinks Trend", m.Backlinks.String(), trendDetail(m.Backlinks)},
		{"Referring Domains Trend", m.ReferringDomains.String(), trendDetail(m.ReferringDomains)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Site Health Score", format.Number(m.HealthScore) + "%", m.HealthStatus})
	t.AppendSeparator()
	for _, s := range m.Intents {
		t.AppendRow(table.Row{s.Label + " Intent", format.Number(s.Percent) + "%", format.Number(float64(s.Count)) + " keywords"})
	}
	return t.Render()
}

func trendDetail(tr Trend) string {
	return format.Number(tr.Change) + " / " + format.Number(tr.Start)
}

// RenderBlockTable renders a single-column table with title as header.
func RenderBlockTable(title, content string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{title})
	t.AppendRow(table.Row{content})
	return t.Render()
}
