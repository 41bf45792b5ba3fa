package deal_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/deal"
	"deal_radar/pkg/errcodes"
)

func percent(p int) *int {
	return &p
}

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestNormalize(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		raw      entity.RawOffer
		original string
		current  string
		discount int
		noPrices bool
	}{
		{
			name: "Minor units with reported discount",
			raw: entity.RawOffer{
				Initial:         entity.MinorPrice("5999"),
				Final:           entity.MinorPrice("2999"),
				DiscountPercent: percent(50),
			},
			original: "59.99",
			current:  "29.99",
			discount: 50,
		},
		{
			name: "Computed discount wins over reported",
			raw: entity.RawOffer{
				Initial:         entity.DecimalPrice("100.00"),
				Final:           entity.DecimalPrice("75.00"),
				DiscountPercent: percent(40),
			},
			original: "100",
			current:  "75",
			discount: 25,
		},
		{
			name: "Rounded discount",
			raw: entity.RawOffer{
				Initial: entity.DecimalPrice("59.99"),
				Final:   entity.DecimalPrice("40.19"),
			},
			original: "59.99",
			current:  "40.19",
			discount: 33,
		},
		{
			name: "Current above original is no promotion",
			raw: entity.RawOffer{
				Initial:         entity.DecimalPrice("19.99"),
				Final:           entity.DecimalPrice("24.99"),
				DiscountPercent: percent(10),
			},
			original: "19.99",
			current:  "24.99",
			discount: 0,
		},
		{
			name: "Initial only",
			raw: entity.RawOffer{
				Initial: entity.DecimalPrice("89.90"),
			},
			original: "89.9",
			current:  "89.9",
			discount: 0,
		},
		{
			name: "Current with percent derives original",
			raw: entity.RawOffer{
				Current:         entity.DecimalPrice("29.99"),
				DiscountPercent: percent(50),
			},
			original: "59.98",
			current:  "29.99",
			discount: 50,
		},
		{
			name: "Current with amount off",
			raw: entity.RawOffer{
				Current:   entity.DecimalPrice("30"),
				AmountOff: entity.DecimalPrice("10"),
			},
			original: "40",
			current:  "30",
			discount: 25,
		},
		{
			name: "Current with full percent is not derivable",
			raw: entity.RawOffer{
				Current:         entity.DecimalPrice("9.99"),
				DiscountPercent: percent(100),
			},
			original: "9.99",
			current:  "9.99",
			discount: 0,
		},
		{
			name: "Final only is treated as current",
			raw: entity.RawOffer{
				Final: entity.MinorPrice("4999"),
			},
			original: "49.99",
			current:  "49.99",
			discount: 0,
		},
		{
			name: "Brazilian scraped text",
			raw: entity.RawOffer{
				Initial: entity.TextPrice("R$ 1.234,56"),
				Final:   entity.TextPrice("R$ 617,28"),
			},
			original: "1234.56",
			current:  "617.28",
			discount: 50,
		},
		{
			name: "English scraped text",
			raw: entity.RawOffer{
				Initial: entity.TextPrice("$1,234.56"),
				Final:   entity.TextPrice("$1,111.10"),
			},
			original: "1234.56",
			current:  "1111.1",
			discount: 10,
		},
		{
			name: "Installment count before the price",
			raw: entity.RawOffer{
				Final: entity.TextPrice("12x R$ 9,99"),
			},
			original: "9.99",
			current:  "9.99",
			discount: 0,
		},
		{
			name: "Price with trailing currency",
			raw: entity.RawOffer{
				Initial: entity.TextPrice("59,99 €"),
				Final:   entity.TextPrice("29,99 €"),
			},
			original: "59.99",
			current:  "29.99",
			discount: 50,
		},
		{
			name: "Free original with full reported discount",
			raw: entity.RawOffer{
				Initial:         entity.DecimalPrice("0"),
				Final:           entity.DecimalPrice("0"),
				DiscountPercent: percent(100),
			},
			original: "0",
			current:  "0",
			discount: 100,
		},
		{
			name:     "No price data",
			raw:      entity.RawOffer{Title: "Dota 2"},
			noPrices: true,
		},
		{
			name:     "Unparseable scraped text",
			raw:      entity.RawOffer{Current: entity.TextPrice("Grátis")},
			noPrices: true,
		},
		{
			name:     "Reported discount without prices is clamped",
			raw:      entity.RawOffer{DiscountPercent: percent(150)},
			noPrices: true,
			discount: 100,
		},
		{
			name:     "Negative scraped text ignored",
			raw:      entity.RawOffer{Final: entity.TextPrice("-R$ 5,00")},
			noPrices: true,
		},
		{
			name:     "Negative price ignored",
			raw:      entity.RawOffer{Current: entity.DecimalPrice("-5")},
			noPrices: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			d := deal.Normalize(tc.raw, "query", entity.StoreSteam)

			rq.True(d.Found)
			rq.Equal("query", d.GameName)
			rq.Equal(entity.StoreSteam, d.Store)

			if tc.noPrices {
				rq.False(d.OriginalPrice.Valid)
				rq.False(d.CurrentPrice.Valid)
				rq.Equal(tc.discount, d.DiscountPercent)
				return
			}

			rq.True(d.HasPrices())
			rq.True(decimal.RequireFromString(tc.original).Equal(d.OriginalPrice.Decimal), "original %s", d.OriginalPrice.Decimal)
			rq.True(decimal.RequireFromString(tc.current).Equal(d.CurrentPrice.Decimal), "current %s", d.CurrentPrice.Decimal)
			rq.Equal(tc.discount, d.DiscountPercent)
		})
	}
}

func TestNormalizeCopiesListing(t *testing.T) {
	rq := require.New(t)

	d := deal.Normalize(entity.RawOffer{
		Title:    "  Hades II ",
		URL:      " https://store.steampowered.com/app/1145350 ",
		Currency: "brl",
		Initial:  entity.MinorPrice("7499"),
		Final:    entity.MinorPrice("7499"),
	}, "hades 2", entity.StoreSteam)

	rq.Equal("Hades II", d.StoreTitle)
	rq.Equal("https://store.steampowered.com/app/1145350", d.URL)
	rq.Equal("BRL", d.Currency)
	rq.Empty(d.Reason)
}

func TestNormalizeIsPure(t *testing.T) {
	rq := require.New(t)

	raw := entity.RawOffer{
		Title:           "Celeste",
		Current:         entity.TextPrice("R$ 18,49"),
		DiscountPercent: percent(75),
	}

	first := deal.Normalize(raw, "celeste", entity.StoreNuuvemWeb)
	second := deal.Normalize(raw, "celeste", entity.StoreNuuvemWeb)

	rq.Equal(first, second)
	rq.Equal(dec("73.96").Decimal.String(), first.OriginalPrice.Decimal.String())
}

func TestDiscountPercentFormula(t *testing.T) {
	rq := require.New(t)

	for original := 1; original <= 200; original += 7 {
		for current := 0; current <= original; current += 3 {
			o := decimal.NewFromInt(int64(original))
			c := decimal.NewFromInt(int64(current))

			want := decimal.NewFromInt(100).Mul(decimal.NewFromInt(1).Sub(c.Div(o))).Round(0).IntPart()

			got := deal.DiscountPercent(o, c, nil)
			rq.EqualValues(want, got, "original=%d current=%d", original, current)
			rq.GreaterOrEqual(got, 0)
			rq.LessOrEqual(got, 100)
		}
	}
}

func TestFailed(t *testing.T) {
	rq := require.New(t)

	notFound := deal.Failed("Nonexistent Game XYZ", entity.StoreSteam,
		fmt.Errorf("steam search: %w", domain.NewError(errcodes.GameNotFound, "no search results")))

	rq.False(notFound.Found)
	rq.Empty(notFound.Reason)
	rq.Equal("Nonexistent Game XYZ", notFound.GameName)
	rq.Equal(entity.StoreSteam, notFound.Store)

	broken := deal.Failed("Hades", entity.StoreGMG, errors.New("gmg search: connection refused"))

	rq.False(broken.Found)
	rq.Equal("gmg search: connection refused", broken.Reason)
	rq.False(broken.HasPrices())
}
