package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"seoreport/internal/analytics"
	"seoreport/internal/gateway/database"
	"seoreport/internal/report"
	"seoreport/internal/store"
)

// Seed a SQLite bundle log with mock report records for the HTTP API.
// Usage: go run scripts/seed_mock_data.go [db_path]
// Default db_path: data/prompts.db
func main() {
	dbPath := "data/prompts.db"
	if len(os.Args) > 1 && strings.TrimSpace(os.Args[1]) != "" {
		dbPath = strings.TrimSpace(os.Args[1])
	}

	st, err := database.NewBundleLogStore(dbPath)
	if err != nil {
		panic(err)
	}
	defer st.Close()

	ctx := context.Background()
	n, err := seedRecords(ctx, st)
	if err != nil {
		panic(err)
	}
	fmt.Printf("✓ %d mock records seeded into %s\n", n, dbPath)
}

var mockSites = []string{"example.co.uk", "brightdental.co.uk", "northside-plumbing.com"}

func seedRecords(ctx context.Context, st store.BundleStore) (int, error) {
	rng := rand.New(rand.NewSource(42))
	builder := report.NewDefaultPromptBuilder(nil, report.Options{})
	now := time.Now().UTC()
	count := 0
	for i, site := range mockSites {
		for month := 3; month >= 1; month-- {
			from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -month, 0)
			to := from.AddDate(0, 1, -1)
			snap := mockSnapshot(rng, site, from, to)
			bundle, err := builder.Build(ctx, snap)
			if err != nil {
				return count, err
			}
			metrics := report.Derive(snap)
			rec := store.Record{
				ID:           uuid.NewString(),
				Target:       site,
				ReportPeriod: metrics.ReportPeriod,
				Bundle:       bundle,
				Metrics:      metrics,
				CreatedAt:    to.Add(time.Duration(24+i) * time.Hour),
			}
			if err := st.Save(ctx, rec); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func mockSnapshot(rng *rand.Rand, site string, from, to time.Time) analytics.Snapshot {
	n := func(lo, hi int) analytics.Number { return analytics.Number(lo + rng.Intn(hi-lo+1)) }
	intents := analytics.Intents
	var all []analytics.Keyword
	for i := 0; i < 12; i++ {
		all = append(all, analytics.Keyword{
			Keyword:      fmt.Sprintf("%s keyword %d", strings.Split(site, ".")[0], i+1),
			Rank:         n(1, 40),
			SearchVolume: n(50, 5000),
			CPC:          analytics.Number(float64(rng.Intn(500)) / 100),
			Intent:       intents[rng.Intn(len(intents))],
		})
	}
	var snap analytics.Snapshot
	snap.Metadata = analytics.Metadata{DateFrom: from.Format("2006-01-02"), DateTo: to.Format("2006-01-02")}
	dr := &snap.DomainRank
	dr.Target = site
	dr.EstimatedTrafficValue = n(500, 8000)
	dr.TotalKeywords = analytics.Number(len(all))
	dr.PeriodChanges.TrafficStart = n(400, 6000)
	dr.PeriodChanges.TrafficValueChange = n(-300, 900)
	dr.PeriodChanges.KeywordsStart = n(50, 300)
	dr.PeriodChanges.KeywordsChange = n(-20, 40)
	dr.Positions.Top3 = n(0, 15)
	dr.Positions.Top10 = n(5, 40)
	dr.Positions.Page2 = n(10, 60)
	dr.Positions.Page3 = n(10, 80)
	dr.Positions.Page4Plus = n(20, 200)
	snap.Keywords.AllKeywords = all
	snap.Keywords.TopPerformers = all[:4]
	snap.Keywords.QuickWinOpportunities = all[4:8]
	bl := &snap.Backlinks
	bl.TotalBacklinks = n(200, 5000)
	bl.ReferringDomains = n(20, 400)
	bl.PeriodChanges.BacklinksStart = n(150, 4000)
	bl.PeriodChanges.BacklinksChange = n(-50, 300)
	bl.PeriodChanges.DomainsStart = n(15, 300)
	bl.PeriodChanges.DomainsChange = n(-5, 30)
	snap.OnPage.PagesCrawled = n(20, 400)
	snap.OnPage.Issues.Critical = n(0, 6)
	snap.OnPage.Issues.Warnings = n(0, 15)
	snap.OnPage.Issues.Notices = n(0, 40)
	return snap
}
