package htmlpage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"

	"deal_radar/internal/infrastructure/store"
)

// StaticRenderer fetches server-rendered pages with colly through the shared
// store client transport and rate limiter.
type StaticRenderer struct {
	client *store.Client
}

func NewStaticRenderer(client *store.Client) StaticRenderer {
	return StaticRenderer{client: client}
}

func (r StaticRenderer) FirstMatch(ctx context.Context, pageURL, selector string) (*goquery.Selection, error) {
	if err := r.client.Wait(ctx); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(r.client.UserAgent()),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(r.client.Timeout())
	c.WithTransport(r.client.Transport())

	var match *goquery.Selection

	c.OnHTML(selector, func(e *colly.HTMLElement) {
		if match == nil {
			match = e.DOM
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, store.TransportError(ctx, fmt.Errorf("colly.Visit: %w", err))
	}

	return match, nil
}

// ChromeRenderer loads pages in headless Chrome for storefronts that build
// their search results with JavaScript.
type ChromeRenderer struct {
	UserAgent string
	// Settle is how long to wait after the body is ready before reading the DOM.
	Settle time.Duration
}

func (r ChromeRenderer) FirstMatch(ctx context.Context, pageURL, selector string) (*goquery.Selection, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var html string

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Sleep(r.Settle),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, store.TransportError(ctx, fmt.Errorf("chromedp.Run: %w", err))
	}

	return FirstMatchIn(html, selector)
}

// FirstMatchIn parses an HTML document and returns the first node matching selector.
func FirstMatchIn(html, selector string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	match := doc.Find(selector).First()
	if match.Length() == 0 {
		return nil, nil //nolint:nilnil
	}

	return match, nil
}
