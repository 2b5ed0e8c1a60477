package chromedp_renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/imcharliesparks/listmaker/internal/repository"
)

// blockedResourcePatterns keeps image and font subresource loads out of the
// render. The fallback only needs the DOM, and these dominate page weight.
var blockedResourcePatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
}

// ChromedpRenderer implements repository.PageRenderer on a shared headless
// Chrome instance. The browser launches lazily on the first render;
// concurrent first callers block on the same launch and receive the same
// instance. Each render runs in its own tab so navigation state never leaks
// between concurrent extractions.
type ChromedpRenderer struct {
	navTimeout  time.Duration
	settleDelay time.Duration

	launchOnce sync.Once
	launchErr  error
	browserCtx context.Context
	cancels    []context.CancelFunc
}

// NewChromedpRenderer creates a renderer. navTimeout bounds navigation;
// settleDelay is the post-navigation wait for client-rendered meta tags.
func NewChromedpRenderer(navTimeout, settleDelay time.Duration) *ChromedpRenderer {
	return &ChromedpRenderer{
		navTimeout:  navTimeout,
		settleDelay: settleDelay,
	}
}

func (r *ChromedpRenderer) launch() error {
	r.launchOnce.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36`),
		)
		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)

		// Run with no actions starts the browser process eagerly so a
		// broken Chrome install fails the first render, not a later one.
		if err := chromedp.Run(browserCtx); err != nil {
			r.launchErr = fmt.Errorf("%w: launch browser: %v", repository.ErrRenderFailed, err)
			browserCancel()
			allocCancel()
			return
		}
		r.browserCtx = browserCtx
		r.cancels = []context.CancelFunc{browserCancel, allocCancel}
	})
	return r.launchErr
}

// RenderHTML loads pageURL in a fresh tab and returns the DOM after the
// settle delay has given client-side rendering a chance to run.
func (r *ChromedpRenderer) RenderHTML(ctx context.Context, pageURL string) (string, error) {
	if err := r.launch(); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.navTimeout+r.settleDelay)
	defer cancelTimeout()

	// The tab context must derive from the browser context, so caller
	// cancellation is forwarded by hand.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-done:
		}
	}()

	var html string
	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetBlockedURLs(blockedResourcePatterns),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(r.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", repository.ErrRenderFailed, pageURL, err)
	}
	return html, nil
}

// Shutdown closes the shared browser process. Safe to call when the browser
// was never launched, and after which the renderer must not be used again.
func (r *ChromedpRenderer) Shutdown(ctx context.Context) error {
	for _, cancel := range r.cancels {
		cancel()
	}
	return nil
}
