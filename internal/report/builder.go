package report

import (
	"context"
	"strings"
	"time"

	"seoreport/internal/analytics"
	"seoreport/internal/pkg/format"
)

const (
	unknownWebsite = "Unknown Website"
	unknownTarget  = "Unknown"
)

// Bundle is the prompt pair handed to the text-generation stage.
type Bundle struct {
	SystemPrompt  string `json:"systemPrompt"`
	UserPrompt    string `json:"userPrompt"`
	TargetWebsite string `json:"targetWebsite"`
	DateFrom      string `json:"dateFrom"`
	DateTo        string `json:"dateTo"`
	ReportPeriod  string `json:"reportPeriod"`
	GeneratedAt   string `json:"generatedAt"`
}

// PromptBuilder turns an analytics snapshot into a prompt bundle.
type PromptBuilder interface {
	Build(ctx context.Context, snap analytics.Snapshot) (Bundle, error)
}

// Options tunes the default builder. Zero values mean defaults.
type Options struct {
	KeywordLimit int
	Currency     string
	Now          func() time.Time
}

// DefaultPromptBuilder renders the SEO performance report prompts.
type DefaultPromptBuilder struct {
	Templates    *Templates
	KeywordLimit int
	Currency     string
	Now          func() time.Time
}

var _ PromptBuilder = (*DefaultPromptBuilder)(nil)

func NewDefaultPromptBuilder(tpl *Templates, opts Options) *DefaultPromptBuilder {
	if tpl == nil {
		tpl = DefaultTemplates()
	}
	b := &DefaultPromptBuilder{
		Templates:    tpl,
		KeywordLimit: opts.KeywordLimit,
		Currency:     opts.Currency,
		Now:          opts.Now,
	}
	if b.KeywordLimit <= 0 {
		b.KeywordLimit = DefaultKeywordLimit
	}
	if strings.TrimSpace(b.Currency) == "" {
		b.Currency = DefaultCurrency
	}
	if b.Now == nil {
		b.Now = time.Now
	}
	return b
}

// Build derives the metrics, renders both templates and stamps the bundle.
// Missing data never fails a build; only a broken template override can.
func (b *DefaultPromptBuilder) Build(ctx context.Context, snap analytics.Snapshot) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}
	metrics := Derive(snap)
	target := snap.DomainRank.Target

	v := view{
		Snapshot:      snap,
		Metrics:       metrics,
		Heading:       orDefault(target, unknownWebsite),
		TargetOrNA:    orDefault(target, NotAvailable),
		ReportPeriod:  metrics.ReportPeriod,
		Currency:      b.Currency,
		TopPerformers: formatKeywords(snap.Keywords.TopPerformers, b.KeywordLimit, b.Currency),
		QuickWins:     formatKeywords(snap.Keywords.QuickWinOpportunities, b.KeywordLimit, b.Currency),
	}
	system, user, err := b.Templates.render(v)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		SystemPrompt:  system,
		UserPrompt:    user,
		TargetWebsite: orDefault(target, unknownTarget),
		DateFrom:      rawDate(snap.Metadata.DateFrom),
		DateTo:        rawDate(snap.Metadata.DateTo),
		ReportPeriod:  metrics.ReportPeriod,
		GeneratedAt:   format.ISOTime(b.Now()),
	}, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
