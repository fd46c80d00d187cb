package report

import (
	"seoreport/internal/analytics"
	"seoreport/internal/pkg/format"
)

// Health status tiers.
const (
	HealthExcellent      = "Excellent"
	HealthMaintenance    = "Good / Technical Maintenance Required"
	HealthNeedsAttention = "Needs Attention / Technical Issues"

	criticalPenalty = 5
	warningPenalty  = 2
)

// Trend is a period change expressed against its starting value.
type Trend struct {
	Change  float64 `json:"change"`
	Start   float64 `json:"start"`
	Percent float64 `json:"percent"`
}

// CalcTrend rounds change/start to a whole percentage; a non-positive start
// yields 0.
func CalcTrend(change, start float64) Trend {
	t := Trend{Change: change, Start: start}
	if start > 0 {
		t.Percent = format.Round(change / start * 100)
	}
	return t
}

func (t Trend) String() string { return format.SignedPercent(t.Percent) }

// HealthScore deducts 5 points per critical issue and 2 per warning, floored at 0.
func HealthScore(critical, warnings float64) float64 {
	score := 100 - critical*criticalPenalty - warnings*warningPenalty
	if score < 0 {
		return 0
	}
	return score
}

func HealthStatus(score float64) string {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthMaintenance
	default:
		return HealthNeedsAttention
	}
}

// IntentShare is one row of the search-intent distribution.
type IntentShare struct {
	Intent  analytics.Intent `json:"intent"`
	Label   string           `json:"label"`
	Count   int              `json:"count"`
	Percent float64          `json:"percent"`
}

var intentLabels = map[analytics.Intent]string{
	analytics.IntentInformational: "Informational",
	analytics.IntentCommercial:    "Commercial",
	analytics.IntentNavigational:  "Navigational",
	analytics.IntentTransactional: "Transactional",
}

// IntentDistribution counts keywords per recognised intent and converts each
// count to a rounded share of the whole list (an empty list counts as 1).
func IntentDistribution(list []analytics.Keyword) []IntentShare {
	counts := make(map[analytics.Intent]int, len(analytics.Intents))
	for _, kw := range list {
		counts[kw.Intent]++
	}
	total := len(list)
	if total == 0 {
		total = 1
	}
	out := make([]IntentShare, 0, len(analytics.Intents))
	for _, intent := range analytics.Intents {
		n := counts[intent]
		out = append(out, IntentShare{
			Intent:  intent,
			Label:   intentLabels[intent],
			Count:   n,
			Percent: format.Round(float64(n) / float64(total) * 100),
		})
	}
	return out
}

// PositionCounts mirrors the SERP position buckets as plain floats.
type PositionCounts struct {
	Top3      float64 `json:"top3"`
	Top10     float64 `json:"top10"`
	Page2     float64 `json:"page2"`
	Page3     float64 `json:"page3"`
	Page4Plus float64 `json:"page4Plus"`
}

// Metrics holds every figure derived from a snapshot.
type Metrics struct {
	Target           string         `json:"target"`
	ReportPeriod     string         `json:"reportPeriod"`
	Traffic          Trend          `json:"traffic"`
	Keywords         Trend          `json:"keywords"`
	Backlinks        Trend          `json:"backlinks"`
	ReferringDomains Trend          `json:"referringDomains"`
	HealthScore      float64        `json:"healthScore"`
	HealthStatus     string         `json:"healthStatus"`
	Intents          []IntentShare  `json:"intents"`
	Positions        PositionCounts `json:"positions"`
}

// Derive computes the metrics for snap. It never fails: missing data is 0.
func Derive(snap analytics.Snapshot) Metrics {
	dr := snap.DomainRank
	bl := snap.Backlinks
	issues := snap.OnPage.Issues
	score := HealthScore(issues.Critical.Float(), issues.Warnings.Float())
	return Metrics{
		Target:           dr.Target,
		ReportPeriod:     ReportPeriod(snap.Metadata.DateFrom, snap.Metadata.DateTo),
		Traffic:          CalcTrend(dr.PeriodChanges.TrafficValueChange.Float(), dr.PeriodChanges.TrafficStart.Float()),
		Keywords:         CalcTrend(dr.PeriodChanges.KeywordsChange.Float(), dr.PeriodChanges.KeywordsStart.Float()),
		Backlinks:        CalcTrend(bl.PeriodChanges.BacklinksChange.Float(), bl.PeriodChanges.BacklinksStart.Float()),
		ReferringDomains: CalcTrend(bl.PeriodChanges.DomainsChange.Float(), bl.PeriodChanges.DomainsStart.Float()),
		HealthScore:      score,
		HealthStatus:     HealthStatus(score),
		Intents:          IntentDistribution(snap.Keywords.AllKeywords),
		Positions: PositionCounts{
			Top3:      dr.Positions.Top3.Float(),
			Top10:     dr.Positions.Top10.Float(),
			Page2:     dr.Positions.Page2.Float(),
			Page3:     dr.Positions.Page3.Float(),
			Page4Plus: dr.Positions.Page4Plus.Float(),
		},
	}
}

// Intent returns the share for one label (zero value when unknown).
func (m Metrics) Intent(intent analytics.Intent) IntentShare {
	for _, s := range m.Intents {
		if s.Intent == intent {
			return s
		}
	}
	return IntentShare{Intent: intent}
}
