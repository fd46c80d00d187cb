package report

import (
	"fmt"
	"strings"

	"seoreport/internal/analytics"
	"seoreport/internal/pkg/format"
)

const (
	// NoKeywords replaces an empty keyword list in the prompt.
	NoKeywords = "*No keywords in this category*"

	DefaultKeywordLimit = 10
	DefaultCurrency     = "£"
)

// FormatKeywords renders the first limit keywords as a ranked markdown list.
func FormatKeywords(list []analytics.Keyword, limit int) string {
	return formatKeywords(list, limit, DefaultCurrency)
}

func formatKeywords(list []analytics.Keyword, limit int, currency string) string {
	if len(list) == 0 {
		return NoKeywords
	}
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	lines := make([]string, len(list))
	for i, kw := range list {
		lines[i] = fmt.Sprintf("%d. **%s** (Rank: %s, Volume: %s/mo, CPC: %s%s)",
			i+1, kw.Keyword, format.Number(kw.Rank.Float()), format.Number(kw.SearchVolume.Float()), currency, format.Number(kw.CPC.Float()))
	}
	return strings.Join(lines, "\n")
}
