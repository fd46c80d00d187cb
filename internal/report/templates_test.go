package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoreport/internal/analytics"
)

type mapLoader map[string]string

func (m mapLoader) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func TestLoadTemplatesFallsBackToEmbedded(t *testing.T) {
	tpl, err := LoadTemplates(mapLoader{}, SystemTemplate, UserTemplate)
	require.NoError(t, err)

	b := NewDefaultPromptBuilder(tpl, Options{})
	bundle, err := b.Build(context.Background(), analytics.Snapshot{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bundle.UserPrompt, "# SEO Performance Report"))

	tpl, err = LoadTemplates(nil, SystemTemplate, UserTemplate)
	require.NoError(t, err)
	assert.NotNil(t, tpl)
}

func TestLoadTemplatesOverride(t *testing.T) {
	loader := mapLoader{
		"agency-system": "You write for {{.Heading}}.",
		"agency-user":   "{{.ReportPeriod}} | {{.Metrics.Traffic}} | {{num .Snapshot.DomainRank.TotalKeywords}} | {{.Metrics.HealthStatus}}\n",
	}
	tpl, err := LoadTemplates(loader, "agency-system", "agency-user")
	require.NoError(t, err)

	snap := analytics.Snapshot{}
	snap.DomainRank.Target = "brand.com"
	snap.DomainRank.TotalKeywords = 12
	snap.DomainRank.PeriodChanges.TrafficStart = 10
	snap.DomainRank.PeriodChanges.TrafficValueChange = -5

	bundle, err := NewDefaultPromptBuilder(tpl, Options{}).Build(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, "You write for brand.com.", bundle.SystemPrompt)
	assert.Equal(t, "N/A - N/A | -50% | 12 | Excellent", bundle.UserPrompt)
}

func TestLoadTemplatesBlankOverrideIgnored(t *testing.T) {
	tpl, err := LoadTemplates(mapLoader{SystemTemplate: "  \n"}, SystemTemplate, UserTemplate)
	require.NoError(t, err)
	bundle, err := NewDefaultPromptBuilder(tpl, Options{}).Build(context.Background(), analytics.Snapshot{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bundle.SystemPrompt, "You are a Senior UK SEO Analyst"))
}

func TestLoadTemplatesParseError(t *testing.T) {
	_, err := LoadTemplates(mapLoader{UserTemplate: "{{.Heading"}, SystemTemplate, UserTemplate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), UserTemplate)
}

func TestBuildTemplateExecutionError(t *testing.T) {
	tpl, err := LoadTemplates(mapLoader{UserTemplate: "{{.Heading.Missing}}"}, SystemTemplate, UserTemplate)
	require.NoError(t, err)
	_, err = NewDefaultPromptBuilder(tpl, Options{}).Build(context.Background(), analytics.Snapshot{})
	require.Error(t, err)
}

func TestRenderMetricsTable(t *testing.T) {
	snap := analytics.Snapshot{}
	snap.DomainRank.Target = "example.co.uk"
	snap.OnPage.Issues.Critical = 3
	snap.OnPage.Issues.Warnings = 5
	out := RenderMetricsTable(Derive(snap))

	assert.Contains(t, out, "example.co.uk | N/A - N/A")
	assert.Contains(t, out, "Site Health Score")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, HealthMaintenance)
	assert.Contains(t, out, "Transactional Intent")

	block := RenderBlockTable("system", "hello")
	assert.Contains(t, block, "SYSTEM")
	assert.Contains(t, block, "hello")
}
