package chart

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoreport/internal/report"
)

func sampleMetrics() report.Metrics {
	return report.Metrics{
		Target:       "example.co.uk",
		ReportPeriod: "1 January 2025 - 31 January 2025",
		Traffic:      report.CalcTrend(250, 1000),
		Keywords:     report.CalcTrend(-5, 100),
		HealthScore:  82,
		HealthStatus: report.HealthExcellent,
		Intents: []report.IntentShare{
			{Intent: "informational", Label: "Informational", Count: 3, Percent: 60},
			{Intent: "commercial", Label: "Commercial", Count: 2, Percent: 40},
		},
		Positions: report.PositionCounts{Top3: 4, Top10: 12, Page2: 20},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleMetrics()))
	html := buf.String()
	for _, want := range []string{
		"example.co.uk | 1 January 2025 - 31 January 2025",
		"Position Distribution",
		"Search Intent",
		"Informational",
		"Period Change (%)",
	} {
		assert.True(t, strings.Contains(html, want), "missing %q", want)
	}
}

func TestPageTitleFallback(t *testing.T) {
	assert.Equal(t, "Unknown Website", pageTitle(report.Metrics{}))
	assert.Equal(t, "a.com", pageTitle(report.Metrics{Target: "a.com"}))
}

var fakePNG = append([]byte("\x89PNG\r\n\x1a\n"), "IHDR"...)

type fakeShooter struct {
	url  string
	data []byte
	err  error
}

func (f *fakeShooter) Screenshot(_ context.Context, url string) ([]byte, error) {
	f.url = url
	if f.err != nil {
		return nil, f.err
	}
	if f.data != nil {
		return f.data, nil
	}
	return fakePNG, nil
}

func TestWriterHTMLOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	out, err := NewWriter(dir, nil).Write(context.Background(), "rec-1", sampleMetrics())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rec-1.html"), out.HTML)
	assert.Empty(t, out.PNG)
	data, err := os.ReadFile(out.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Search Intent")
}

func TestWriterScreenshot(t *testing.T) {
	dir := t.TempDir()
	shooter := &fakeShooter{}
	out, err := NewWriter(dir, shooter).Write(context.Background(), "rec-2", sampleMetrics())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(shooter.url, "file://"))
	assert.True(t, strings.HasSuffix(shooter.url, "rec-2.html"))
	data, err := os.ReadFile(out.PNG)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, data)

	shooter.err = errors.New("no chrome")
	out, err = NewWriter(dir, shooter).Write(context.Background(), "rec-3", sampleMetrics())
	require.Error(t, err)
	assert.FileExists(t, out.HTML)
}

func TestWriterRejectsNonPNGScreenshot(t *testing.T) {
	dir := t.TempDir()
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	out, err := NewWriter(dir, &fakeShooter{data: jpeg}).Write(context.Background(), "rec-4", sampleMetrics())
	require.Error(t, err)
	assert.Empty(t, out.PNG)
	assert.NoFileExists(t, filepath.Join(dir, "rec-4.png"))
}

func TestScreenshotActionsRequestPNG(t *testing.T) {
	assert.Equal(t, 100, pngQuality)
	var buf []byte
	actions := screenshotActions("file:///tmp/x.html", &buf)
	assert.Len(t, actions, 2)
}

func TestWriterRejectsBadID(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	_, err := w.Write(context.Background(), "../x", sampleMetrics())
	assert.Error(t, err)
	_, err = w.Write(context.Background(), " ", sampleMetrics())
	assert.Error(t, err)
}

func TestNewBrowserManagerDefaults(t *testing.T) {
	m := NewBrowserManager("", 0)
	assert.Equal(t, 60*time.Second, m.timeout)
	m = NewBrowserManager("ws://127.0.0.1:9222", 5*time.Second)
	assert.Equal(t, "ws://127.0.0.1:9222", m.remoteURL)
}
