package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/infrastructure/store"
	"deal_radar/pkg/errcodes"
)

const (
	Source  = entity.StoreSteam
	BaseURL = "https://store.steampowered.com"
)

type Options struct {
	BaseURL  string
	Country  string
	Language string
	// SearchCacheTTL keeps term -> app id lookups between passes; zero disables it.
	SearchCacheTTL time.Duration
}

// Adapter ищет игру через storesearch и берёт цену из appdetails.
type Adapter struct {
	client   *store.Client
	baseURL  string
	country  string
	language string
	searches *cache.Cache
}

type searchItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type searchResponse struct {
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

type priceOverview struct {
	Currency        string `json:"currency"`
	Initial         int64  `json:"initial"`
	Final           int64  `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
}

type appDetails struct {
	Success bool `json:"success"`
	Data    struct {
		Name          string         `json:"name"`
		IsFree        bool           `json:"is_free"`
		PriceOverview *priceOverview `json:"price_overview"`
	} `json:"data"`
}

func New(client *store.Client, opts Options) *Adapter {
	a := &Adapter{
		client:   client,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		country:  opts.Country,
		language: opts.Language,
	}

	if a.baseURL == "" {
		a.baseURL = BaseURL
	}

	if opts.SearchCacheTTL > 0 {
		a.searches = cache.New(opts.SearchCacheTTL, 2*opts.SearchCacheTTL)
	}

	return a
}

func (a *Adapter) Store() entity.Store {
	return Source
}

func (a *Adapter) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	item, err := a.search(ctx, game)
	if err != nil {
		return entity.RawOffer{}, err
	}

	details, err := a.details(ctx, item.ID)
	if err != nil {
		return entity.RawOffer{}, err
	}

	offer := entity.RawOffer{
		Title: item.Name,
		URL:   fmt.Sprintf("%s/app/%d", a.baseURL, item.ID),
	}

	if details.Data.Name != "" {
		offer.Title = details.Data.Name
	}

	// Нет price_overview: бесплатная игра или цена не указана.
	if p := details.Data.PriceOverview; p != nil {
		discount := p.DiscountPercent

		offer.Currency = p.Currency
		offer.Initial = entity.MinorPrice(strconv.FormatInt(p.Initial, 10))
		offer.Final = entity.MinorPrice(strconv.FormatInt(p.Final, 10))
		offer.DiscountPercent = &discount
	}

	return offer, nil
}

func (a *Adapter) search(ctx context.Context, game string) (searchItem, error) {
	key := strings.ToLower(strings.TrimSpace(game))

	if a.searches != nil {
		if cached, found := a.searches.Get(key); found {
			return cached.(searchItem), nil //nolint:forcetypeassert
		}
	}

	query := url.Values{"term": {game}}
	a.localize(query)

	var resp searchResponse
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/storesearch", query, &resp); err != nil {
		return searchItem{}, fmt.Errorf("steam search: %w", err)
	}

	if len(resp.Items) == 0 {
		return searchItem{}, fmt.Errorf("steam search: %w", store.NotFound(game))
	}

	item := resp.Items[0]

	if a.searches != nil {
		a.searches.Set(key, item, cache.DefaultExpiration)
	}

	return item, nil
}

func (a *Adapter) details(ctx context.Context, appID int64) (appDetails, error) {
	id := strconv.FormatInt(appID, 10)

	query := url.Values{"appids": {id}}
	a.localize(query)

	var resp map[string]appDetails
	if err := a.client.GetJSON(ctx, a.baseURL+"/api/appdetails", query, &resp); err != nil {
		return appDetails{}, fmt.Errorf("steam details: %w", err)
	}

	details, ok := resp[id]
	if !ok {
		return appDetails{}, fmt.Errorf("steam details: %w",
			domain.NewError(errcodes.MalformedResponse, "app "+id+" missing from response"))
	}

	if !details.Success {
		return appDetails{}, fmt.Errorf("steam details: %w",
			domain.NewError(errcodes.StoreRejected, "app "+id+" returned success=false"))
	}

	return details, nil
}

func (a *Adapter) localize(query url.Values) {
	if a.country != "" {
		query.Set("cc", a.country)
	}

	if a.language != "" {
		query.Set("l", a.language)
	}
}
