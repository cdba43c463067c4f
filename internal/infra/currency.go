package infra

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter renders monetary amounts with the configured locale's
// separators and the currency's symbol. Used by invoice rendering.
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewCurrencyFormatter(locale, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &CurrencyFormatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

func (f *CurrencyFormatter) Format(d decimal.Decimal) string {
	amount, _ := d.Float64()
	return f.printer.Sprint(currency.NarrowSymbol(f.unit.Amount(amount)))
}
