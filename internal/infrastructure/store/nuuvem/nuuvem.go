package nuuvem

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/infrastructure/store"
)

const (
	Source        = entity.StoreNuuvem
	BaseURL       = "https://www.nuuvem.com"
	DefaultLocale = "br-pt"
)

type Options struct {
	BaseURL string
	Locale  string
}

// Adapter searches the catalog.json endpoint.
type Adapter struct {
	client  *store.Client
	baseURL string
	locale  string
}

type product struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price struct {
		Amount            store.Number `json:"amount"`
		OriginalAmount    store.Number `json:"original_amount"`
		PromotionalAmount store.Number `json:"promotional_amount"`
	} `json:"price"`
	Discount struct {
		Percentage store.Number `json:"percentage"`
	} `json:"discount"`
}

type catalogResponse struct {
	Products []product `json:"products"`
}

func New(client *store.Client, opts Options) *Adapter {
	a := &Adapter{
		client:  client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		locale:  strings.Trim(opts.Locale, "/"),
	}

	if a.baseURL == "" {
		a.baseURL = BaseURL
	}

	if a.locale == "" {
		a.locale = DefaultLocale
	}

	return a
}

func (a *Adapter) Store() entity.Store {
	return Source
}

func (a *Adapter) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	var resp catalogResponse

	endpoint := fmt.Sprintf("%s/%s/catalog.json", a.baseURL, a.locale)
	if err := a.client.GetJSON(ctx, endpoint, url.Values{"q": {game}}, &resp); err != nil {
		return entity.RawOffer{}, fmt.Errorf("nuuvem search: %w", err)
	}

	if len(resp.Products) == 0 {
		return entity.RawOffer{}, fmt.Errorf("nuuvem search: %w", store.NotFound(game))
	}

	p := resp.Products[0]

	offer := entity.RawOffer{
		Title: p.Name,
		URL:   store.ResolveURL(a.baseURL, p.URL),
	}

	// amount is the list price; original_amount is an older field name for it.
	initial := p.Price.Amount
	if initial == "" {
		initial = p.Price.OriginalAmount
	}

	if initial != "" {
		offer.Initial = entity.DecimalPrice(initial.String())
	}

	if p.Price.PromotionalAmount != "" {
		offer.Final = entity.DecimalPrice(p.Price.PromotionalAmount.String())
	}

	if pct, ok := p.Discount.Percentage.Int(); ok {
		offer.DiscountPercent = &pct
	}

	return offer, nil
}
