package gmg

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/infrastructure/store"
)

const (
	Source  = entity.StoreGMG
	BaseURL = "https://www.greenmangaming.com"
)

type Options struct {
	BaseURL string
	Country string
}

// Adapter searches the Green Man Gaming catalogue API. The API reports the
// recommended retail price and the selling price; the discount is derived.
type Adapter struct {
	client  *store.Client
	baseURL string
	country string
}

type product struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price struct {
		RRP      store.Number `json:"rrp"`
		Price    store.Number `json:"price"`
		Currency string       `json:"currency"`
	} `json:"price"`
}

type searchResponse struct {
	Products []product `json:"products"`
}

func New(client *store.Client, opts Options) *Adapter {
	a := &Adapter{
		client:  client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		country: strings.ToUpper(opts.Country),
	}

	if a.baseURL == "" {
		a.baseURL = BaseURL
	}

	return a
}

func (a *Adapter) Store() entity.Store {
	return Source
}

func (a *Adapter) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	query := url.Values{"query": {game}}
	if a.country != "" {
		query.Set("country", a.country)
	}

	var resp searchResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/v2/catalogue/search/", query, &resp); err != nil {
		return entity.RawOffer{}, fmt.Errorf("gmg search: %w", err)
	}

	if len(resp.Products) == 0 {
		return entity.RawOffer{}, fmt.Errorf("gmg search: %w", store.NotFound(game))
	}

	p := resp.Products[0]

	offer := entity.RawOffer{
		Title:    p.Name,
		URL:      store.ResolveURL(a.baseURL, p.URL),
		Currency: p.Price.Currency,
	}

	if p.Price.RRP != "" {
		offer.Initial = entity.DecimalPrice(p.Price.RRP.String())
	}

	if p.Price.Price != "" {
		offer.Final = entity.DecimalPrice(p.Price.Price.String())
	}

	return offer, nil
}
