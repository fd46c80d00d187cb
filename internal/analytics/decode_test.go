package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedPayload = `{
  "domainRank": {"domainRank": {
    "target": "example.co.uk",
    "estimatedTrafficValue": 1520.75,
    "totalKeywords": 340,
    "periodChanges": {"trafficStart": 100, "trafficValueChange": 25, "keywordsStart": "200", "keywordsChange": -10},
    "positions": {"top3": 12, "top10": 48, "page2": 60, "page3": 41, "page4Plus": 179},
    "movement": {"newKeywords": 22, "improved": 31, "declined": 9, "lost": 4}
  }},
  "keywords": {"keywords": {
    "summary": {"totalKeywords": 340, "brandedPercent": 12.5},
    "allKeywords": [
      {"keyword": "seo audit", "rank": 3, "searchVolume": 880, "cpc": 4.2, "intent": "commercial"},
      {"keyword": "what is seo", "rank": 14, "searchVolume": 2400, "cpc": 1.1, "intent": "informational"}
    ],
    "topPerformers": [{"keyword": "seo audit", "rank": 3, "searchVolume": 880, "cpc": 4.2}]
  }},
  "backlinks": {"backlinks": {"totalBacklinks": 5400, "referringDomains": 310, "rank": 41}},
  "onPage": {"onPage": {"pagesCrawled": 250, "issues": {"critical": 3, "warnings": 5}}},
  "metadata": {"dateFrom": "2025-01-01", "dateTo": "2025-01-31"}
}`

func TestDecodeWrappedSections(t *testing.T) {
	snap, err := Decode([]byte(wrappedPayload))
	require.NoError(t, err)

	assert.Equal(t, "example.co.uk", snap.DomainRank.Target)
	assert.Equal(t, 1520.75, snap.DomainRank.EstimatedTrafficValue.Float())
	assert.Equal(t, Number(200), snap.DomainRank.PeriodChanges.KeywordsStart)
	assert.Equal(t, Number(-10), snap.DomainRank.PeriodChanges.KeywordsChange)
	assert.Equal(t, Number(179), snap.DomainRank.Positions.Page4Plus)
	require.Len(t, snap.Keywords.AllKeywords, 2)
	assert.Equal(t, IntentInformational, snap.Keywords.AllKeywords[1].Intent)
	assert.Equal(t, Number(12.5), snap.Keywords.Summary.BrandedPercent)
	assert.Equal(t, Number(310), snap.Backlinks.ReferringDomains)
	assert.Equal(t, Number(3), snap.OnPage.Issues.Critical)
	assert.Equal(t, "2025-01-31", snap.Metadata.DateTo)
}

func TestDecodeFlatSections(t *testing.T) {
	snap, err := Decode([]byte(`{"domainRank": {"target": "flat.io", "totalKeywords": 7}, "onPage": {"issues": {"warnings": 2}}}`))
	require.NoError(t, err)
	assert.Equal(t, "flat.io", snap.DomainRank.Target)
	assert.Equal(t, Number(7), snap.DomainRank.TotalKeywords)
	assert.Equal(t, Number(2), snap.OnPage.Issues.Warnings)
}

func TestDecodePipelineItems(t *testing.T) {
	payloads := []string{
		`{"json": {"domainRank": {"domainRank": {"target": "item.com"}}}}`,
		`[{"json": {"domainRank": {"target": "item.com"}}}, {"json": {}}]`,
		`[{"domainRank": {"target": "item.com"}}]`,
	}
	for _, p := range payloads {
		snap, err := Decode([]byte(p))
		require.NoError(t, err, p)
		assert.Equal(t, "item.com", snap.DomainRank.Target, p)
	}
}

func TestDecodeMistypedFieldsDegrade(t *testing.T) {
	payload := `{
	  "domainRank": {"target": 42, "totalKeywords": "n/a", "positions": "broken", "estimatedTrafficValue": true},
	  "keywords": {"allKeywords": {"not": "a list"}, "topPerformers": [{"keyword": "ok", "rank": "5"}]},
	  "backlinks": "nope",
	  "onPage": {"pagesCrawled": null, "issues": {"critical": 2}},
	  "metadata": {"dateFrom": 20250101, "dateTo": "2025-02-01"}
	}`
	snap, err := Decode([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "", snap.DomainRank.Target)
	assert.Zero(t, snap.DomainRank.TotalKeywords)
	assert.Zero(t, snap.DomainRank.EstimatedTrafficValue)
	assert.Equal(t, Positions{}, snap.DomainRank.Positions)
	assert.Empty(t, snap.Keywords.AllKeywords)
	require.Len(t, snap.Keywords.TopPerformers, 1)
	assert.Equal(t, Number(5), snap.Keywords.TopPerformers[0].Rank)
	assert.Equal(t, Backlinks{}, snap.Backlinks)
	assert.Zero(t, snap.OnPage.PagesCrawled)
	assert.Equal(t, Number(2), snap.OnPage.Issues.Critical)
	assert.Equal(t, "", snap.Metadata.DateFrom)
	assert.Equal(t, "2025-02-01", snap.Metadata.DateTo)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, p := range []string{"", "null", "42", `"text"`, "[]", "[1,2]"} {
		_, err := Decode([]byte(p))
		assert.ErrorIs(t, err, ErrNotObject, p)
	}
	_, err := Decode([]byte(`{"domainRank": `))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotObject)
}

func TestDecodeReader(t *testing.T) {
	snap, err := DecodeReader(strings.NewReader(`{"metadata": {"dateFrom": "2025-03-01"}}`))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", snap.Metadata.DateFrom)
}

func TestEmptyObject(t *testing.T) {
	snap, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Snapshot{}, snap)
}
