package htmlpage

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/infrastructure/store"
)

// Selectors locate one search result card and its fields. Field selectors
// are relative to the card; an empty Link uses the card's own href.
type Selectors struct {
	Item     string
	Title    string
	Link     string
	Price    string
	OldPrice string
	Discount string
}

// Preset describes a storefront whose search results are only available as HTML.
type Preset struct {
	Store entity.Store
	// SearchURL contains one %s for the path-escaped query.
	SearchURL string
	BaseURL   string
	Selectors Selectors
}

//nolint:gochecknoglobals
var NuuvemSearch = Preset{
	Store:     entity.StoreNuuvemWeb,
	SearchURL: "https://www.nuuvem.com/br-pt/catalog/search/%s",
	BaseURL:   "https://www.nuuvem.com",
	Selectors: Selectors{
		Item:     ".product-card--grid",
		Title:    ".product-title",
		Link:     "a.product-card--wrapper",
		Price:    ".product-price--val",
		OldPrice: ".product-price--old",
		Discount: ".product-price--discount",
	},
}

// Renderer loads a page and returns the first node matching selector, or nil.
type Renderer interface {
	FirstMatch(ctx context.Context, pageURL, selector string) (*goquery.Selection, error)
}

type Adapter struct {
	preset   Preset
	renderer Renderer
}

//nolint:gochecknoglobals
var percentPattern = regexp.MustCompile(`(\d{1,3})\s*%`)

func New(preset Preset, renderer Renderer) *Adapter {
	return &Adapter{
		preset:   preset,
		renderer: renderer,
	}
}

func (a *Adapter) Store() entity.Store {
	return a.preset.Store
}

func (a *Adapter) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	sel := a.preset.Selectors
	pageURL := fmt.Sprintf(a.preset.SearchURL, url.PathEscape(game))

	item, err := a.renderer.FirstMatch(ctx, pageURL, sel.Item)
	if err != nil {
		return entity.RawOffer{}, fmt.Errorf("%s page: %w", a.preset.Store, err)
	}

	// Missing card or price node means the search had no usable result.
	if item == nil {
		return entity.RawOffer{}, fmt.Errorf("%s page: %w", a.preset.Store, store.NotFound(game))
	}

	price := text(item, sel.Price)
	if price == "" {
		return entity.RawOffer{}, fmt.Errorf("%s page: %w", a.preset.Store, store.NotFound(game))
	}

	offer := entity.RawOffer{
		Title: text(item, sel.Title),
		URL:   store.ResolveURL(a.preset.BaseURL, link(item, sel.Link)),
	}

	if old := text(item, sel.OldPrice); old != "" {
		offer.Initial = entity.TextPrice(old)
		offer.Final = entity.TextPrice(price)
	} else {
		offer.Current = entity.TextPrice(price)
	}

	if m := percentPattern.FindStringSubmatch(text(item, sel.Discount)); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil {
			offer.DiscountPercent = &pct
		}
	}

	return offer, nil
}

func text(item *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}

	return strings.Join(strings.Fields(item.Find(selector).First().Text()), " ")
}

func link(item *goquery.Selection, selector string) string {
	node := item
	if selector != "" {
		node = item.Find(selector).First()
	}

	return node.AttrOr("href", "")
}
