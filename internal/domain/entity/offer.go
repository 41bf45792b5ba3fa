package entity

// PriceUnit описывает, в каком виде витрина отдала цену.
type PriceUnit int

const (
	// UnitMinor: целое число в минорных единицах (центах).
	UnitMinor PriceUnit = iota + 1
	// UnitDecimal: десятичная строка вида "59.99".
	UnitDecimal
	// UnitText: текст со страницы: символ валюты, разделители разрядов.
	UnitText
)

// RawPrice хранит цену в том виде, в котором её сообщил источник.
type RawPrice struct {
	Value string
	Unit  PriceUnit
}

// Set сообщает, передал ли источник значение.
func (p RawPrice) Set() bool {
	return p.Unit != 0 && p.Value != ""
}

func MinorPrice(value string) RawPrice {
	return RawPrice{Value: value, Unit: UnitMinor}
}

func DecimalPrice(value string) RawPrice {
	return RawPrice{Value: value, Unit: UnitDecimal}
}

func TextPrice(value string) RawPrice {
	return RawPrice{Value: value, Unit: UnitText}
}

// RawOffer описывает первый результат поиска витрины до нормализации.
type RawOffer struct {
	Title    string
	URL      string
	Currency string

	// Явные исходная и итоговая цены.
	Initial RawPrice
	Final   RawPrice

	// Единственная текущая цена и то, что известно о скидке.
	Current         RawPrice
	AmountOff       RawPrice
	DiscountPercent *int
}
