package chart

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// Screenshotter 把一个 URL 渲染为 PNG。
type Screenshotter interface {
	Screenshot(ctx context.Context, url string) ([]byte, error)
}

// BrowserManager 通过 headless Chrome 截图；remoteURL 非空时连接已有浏览器。
type BrowserManager struct {
	remoteURL string
	timeout   time.Duration
}

func NewBrowserManager(remoteURL string, timeout time.Duration) *BrowserManager {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &BrowserManager{remoteURL: remoteURL, timeout: timeout}
}

func (m *BrowserManager) Run(ctx context.Context, actions ...chromedp.Action) error {
	var (
		allocCtx context.Context
		cancel   context.CancelFunc
	)
	if m.remoteURL != "" {
		allocCtx, cancel = chromedp.NewRemoteAllocator(ctx, m.remoteURL)
	} else {
		allocCtx, cancel = chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	}
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, m.timeout)
	defer cancel()

	return chromedp.Run(timeoutCtx, actions...)
}

// pngQuality 100 时 chromedp 输出 PNG，其余取值输出 JPEG。
const pngQuality = 100

// Screenshot 整页 PNG 截图。
func (m *BrowserManager) Screenshot(ctx context.Context, url string) ([]byte, error) {
	var buf []byte
	err := m.Run(ctx, screenshotActions(url, &buf)...)
	return buf, err
}

func screenshotActions(url string, buf *[]byte) []chromedp.Action {
	return []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.FullScreenshot(buf, pngQuality),
	}
}
