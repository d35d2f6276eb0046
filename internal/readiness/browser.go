package readiness

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/brogergvhs/magnify/internal/page"

	"github.com/chromedp/chromedp"
)

// BrowserSource reads the live DOM of a page rendered by a local headless
// Chrome. Page scripts run, so containers inserted after load show up in
// later snapshots.
type BrowserSource struct {
	url    string
	tab    context.Context
	cancel context.CancelFunc

	once    sync.Once
	openErr error
}

// BrowserOptions are the allocator flags used when none are given.
func BrowserOptions(headless bool) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
}

// PageURL turns a local path into a file:// URL. Values that already carry
// a scheme are returned unchanged.
func PageURL(target string) (string, error) {
	if target == "" {
		return "", errors.New("empty page location")
	}

	// single-letter schemes are Windows drive letters
	if u, err := url.Parse(target); err == nil && len(u.Scheme) > 1 {
		return target, nil
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if u.Path[0] != '/' {
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

// NewBrowserSource prepares a tab for target. Chrome starts on the first
// Load; Close releases it.
func NewBrowserSource(target string, opts ...chromedp.ExecAllocatorOption) (*BrowserSource, error) {
	u, err := PageURL(target)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		opts = BrowserOptions(true)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tab, tabCancel := chromedp.NewContext(allocCtx)

	return &BrowserSource{
		url: u,
		tab: tab,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
	}, nil
}

func (b *BrowserSource) URL() string {
	return b.url
}

func (b *BrowserSource) Close() {
	b.cancel()
}

func (b *BrowserSource) open(ctx context.Context) error {
	b.once.Do(func() {
		// the first Run starts the browser and must use the tab context itself
		if err := chromedp.Run(b.tab); err != nil {
			b.openErr = fmt.Errorf("start browser: %w", err)
			return
		}
		if err := b.run(ctx, chromedp.Navigate(b.url)); err != nil {
			b.openErr = fmt.Errorf("open %s: %w", b.url, err)
		}
	})
	return b.openErr
}

// run executes actions on the tab and gives up when ctx ends.
func (b *BrowserSource) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(b.tab)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (b *BrowserSource) Load(ctx context.Context) (page.Accessor, error) {
	if err := b.open(ctx); err != nil {
		return nil, err
	}

	var markup string
	if err := b.run(ctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return nil, err
	}

	return page.FromString(markup)
}
