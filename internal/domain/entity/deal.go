package entity

import "github.com/shopspring/decimal"

// Deal описывает нормализованное предложение одной витрины по одной игре за один проход.
type Deal struct {
	GameName   string
	Store      Store
	StoreTitle string

	OriginalPrice   decimal.NullDecimal
	CurrentPrice    decimal.NullDecimal
	Currency        string
	DiscountPercent int
	URL             string

	Found bool
	// Reason пуст, если витрина просто не нашла игру, и описывает сбой иначе.
	Reason string
}

// HasPrices сообщает, известны ли обе цены.
func (d Deal) HasPrices() bool {
	return d.OriginalPrice.Valid && d.CurrentPrice.Valid
}

// Title возвращает название витрины, либо поисковый запрос, если названия нет.
func (d Deal) Title() string {
	if d.StoreTitle != "" {
		return d.StoreTitle
	}
	return d.GameName
}
