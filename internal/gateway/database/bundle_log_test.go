package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoreport/internal/report"
	"seoreport/internal/store"
)

func newTestStore(t *testing.T) *BundleLogStore {
	t.Helper()
	s, err := NewBundleLogStore(filepath.Join(t.TempDir(), "nested", "prompts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(id string, created time.Time) store.Record {
	return store.Record{
		ID:           id,
		Target:       "example.co.uk",
		ReportPeriod: "1 January 2025 - 31 January 2025",
		Bundle: report.Bundle{
			SystemPrompt:  "system",
			UserPrompt:    "user " + id,
			TargetWebsite: "example.co.uk",
			DateFrom:      "2025-01-01",
			DateTo:        "2025-01-31",
			ReportPeriod:  "1 January 2025 - 31 January 2025",
			GeneratedAt:   "2025-02-01T00:00:00.000Z",
		},
		Metrics: report.Metrics{
			Target:      "example.co.uk",
			HealthScore: 75,
			Traffic:     report.CalcTrend(25, 100),
			Intents:     []report.IntentShare{{Intent: "commercial", Label: "Commercial", Count: 2, Percent: 50}},
		},
		CreatedAt: created,
	}
}

func TestBundleLogRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	created := time.Date(2025, 2, 1, 10, 0, 0, 123_000_000, time.UTC)
	want := sampleRecord("abc", created)
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBundleLogUpsertAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Save(ctx, sampleRecord(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Hour))))
	}
	updated := sampleRecord("id-1", base.Add(time.Hour))
	updated.Bundle.UserPrompt = "rewritten"
	require.NoError(t, s.Save(ctx, updated))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "id-3", all[0].ID)
	assert.Equal(t, "id-0", all[3].ID)
	assert.Equal(t, "rewritten", all[2].Bundle.UserPrompt)

	top, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestBundleLogValidation(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Save(context.Background(), store.Record{}))

	_, err := NewBundleLogStore("  ")
	assert.Error(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = s.List(context.Background(), 1)
	assert.Error(t, err)
}

func TestBundleLogDefaultsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	rec := sampleRecord("fresh", time.Time{})
	require.NoError(t, s.Save(ctx, rec))
	got, err := s.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}
