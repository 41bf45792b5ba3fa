package deal

import (
	"strings"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
)

// Normalize строит Deal из первого результата витрины. Функция чистая:
// одинаковый вход даёт одинаковый Deal.
func Normalize(raw entity.RawOffer, game string, store entity.Store) entity.Deal {
	d := entity.Deal{
		GameName:   game,
		Store:      store,
		StoreTitle: strings.TrimSpace(raw.Title),
		Currency:   strings.ToUpper(strings.TrimSpace(raw.Currency)),
		URL:        strings.TrimSpace(raw.URL),
		Found:      true,
	}

	original, current, ok := resolvePrices(raw)
	if !ok {
		// Бесплатная, снятая с продажи или без цены.
		if raw.DiscountPercent != nil {
			d.DiscountPercent = clampPercent(*raw.DiscountPercent)
		}
		return d
	}

	d.OriginalPrice = decimal.NewNullDecimal(original)
	d.CurrentPrice = decimal.NewNullDecimal(current)
	d.DiscountPercent = DiscountPercent(original, current, raw.DiscountPercent)

	return d
}

// Failed превращает ошибку адаптера в Deal с Found=false.
func Failed(game string, store entity.Store, err error) entity.Deal {
	d := entity.Deal{
		GameName: game,
		Store:    store,
		Found:    false,
	}

	if err != nil && !domain.IsNotFound(err) {
		d.Reason = err.Error()
	}

	return d
}

func resolvePrices(raw entity.RawOffer) (original, current decimal.Decimal, ok bool) {
	initial, hasInitial := price(raw.Initial)
	final, hasFinal := price(raw.Final)

	switch {
	case hasInitial && hasFinal:
		return initial, final, true
	case hasInitial:
		return initial, initial, true
	}

	current, hasCurrent := price(raw.Current)
	if !hasCurrent {
		current, hasCurrent = final, hasFinal
	}
	if !hasCurrent {
		return decimal.Zero, decimal.Zero, false
	}

	if amountOff, has := price(raw.AmountOff); has && amountOff.IsPositive() {
		return current.Add(amountOff), current, true
	}

	if raw.DiscountPercent != nil && *raw.DiscountPercent > 0 && *raw.DiscountPercent < 100 {
		rest := hundred.Sub(decimal.NewFromInt(int64(*raw.DiscountPercent))).Div(hundred)
		return current.Div(rest).Round(2), current, true
	}

	return current, current, true
}

// price возвращает значение, если источник его передал и оно разбирается
// в неотрицательное число.
func price(p entity.RawPrice) (decimal.Decimal, bool) {
	if !p.Set() {
		return decimal.Zero, false
	}

	d, err := parsePrice(p)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}

	return d, true
}
