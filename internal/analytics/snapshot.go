// Package analytics holds the upstream SEO snapshot consumed by the report
// prompt builder. Every field is optional and decodes leniently: missing or
// mistyped values stay at their zero value.
package analytics

// Snapshot is one upstream analytics payload.
type Snapshot struct {
	DomainRank DomainRank `json:"domainRank"`
	Keywords   Keywords   `json:"keywords"`
	Backlinks  Backlinks  `json:"backlinks"`
	OnPage     OnPage     `json:"onPage"`
	Metadata   Metadata   `json:"metadata"`
}

type DomainRank struct {
	Target                string       `json:"target"`
	EstimatedTrafficValue Number       `json:"estimatedTrafficValue"`
	TotalKeywords         Number       `json:"totalKeywords"`
	PeriodChanges         RankChanges  `json:"periodChanges"`
	Positions             Positions    `json:"positions"`
	Movement              RankMovement `json:"movement"`
}

type RankChanges struct {
	TrafficValueChange Number `json:"trafficValueChange"`
	TrafficStart       Number `json:"trafficStart"`
	TrafficEnd         Number `json:"trafficEnd"`
	KeywordsChange     Number `json:"keywordsChange"`
	KeywordsStart      Number `json:"keywordsStart"`
	KeywordsEnd        Number `json:"keywordsEnd"`
}

// Positions buckets ranking keywords by SERP position.
type Positions struct {
	Top3      Number `json:"top3"`
	Top10     Number `json:"top10"`
	Page2     Number `json:"page2"`
	Page3     Number `json:"page3"`
	Page4Plus Number `json:"page4Plus"`
}

type RankMovement struct {
	NewKeywords Number `json:"newKeywords"`
	Improved    Number `json:"improved"`
	Declined    Number `json:"declined"`
	Lost        Number `json:"lost"`
}

type Keywords struct {
	Summary               KeywordSummary `json:"summary"`
	AllKeywords           []Keyword      `json:"allKeywords"`
	TopPerformers         []Keyword      `json:"topPerformers"`
	QuickWinOpportunities []Keyword      `json:"quickWinOpportunities"`
}

type KeywordSummary struct {
	TotalKeywords     Number `json:"totalKeywords"`
	TotalSearchVolume Number `json:"totalSearchVolume"`
	BrandedCount      Number `json:"brandedCount"`
	BrandedPercent    Number `json:"brandedPercent"`
	UnbrandedCount    Number `json:"unbrandedCount"`
	UnbrandedPercent  Number `json:"unbrandedPercent"`
}

// Keyword is a single ranking keyword row.
type Keyword struct {
	Keyword      string `json:"keyword"`
	Rank         Number `json:"rank"`
	SearchVolume Number `json:"searchVolume"`
	CPC          Number `json:"cpc"`
	Intent       Intent `json:"intent"`
}

type Backlinks struct {
	TotalBacklinks   Number          `json:"totalBacklinks"`
	ReferringDomains Number          `json:"referringDomains"`
	Rank             Number          `json:"rank"`
	PeriodChanges    BacklinkChanges `json:"periodChanges"`
}

type BacklinkChanges struct {
	BacklinksChange Number `json:"backlinksChange"`
	BacklinksStart  Number `json:"backlinksStart"`
	BacklinksEnd    Number `json:"backlinksEnd"`
	DomainsChange   Number `json:"domainsChange"`
	DomainsStart    Number `json:"domainsStart"`
	DomainsEnd      Number `json:"domainsEnd"`
}

type OnPage struct {
	PagesCrawled Number      `json:"pagesCrawled"`
	Issues       Issues      `json:"issues"`
	PageMetrics  PageMetrics `json:"pageMetrics"`
}

type Issues struct {
	Critical Number `json:"critical"`
	Warnings Number `json:"warnings"`
	Notices  Number `json:"notices"`
}

type PageMetrics struct {
	BrokenLinks          Number `json:"brokenLinks"`
	BrokenResources      Number `json:"brokenResources"`
	DuplicateTitle       Number `json:"duplicateTitle"`
	DuplicateDescription Number `json:"duplicateDescription"`
	DuplicateContent     Number `json:"duplicateContent"`
}

// Metadata describes the reporting window; dates are passed through as given.
type Metadata struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// Intent is the search-intent label attached to a keyword.
type Intent string

const (
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentNavigational  Intent = "navigational"
	IntentTransactional Intent = "transactional"
)

// Intents lists the recognised labels in report order.
var Intents = []Intent{IntentInformational, IntentCommercial, IntentNavigational, IntentTransactional}
