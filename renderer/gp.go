package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// GP is the currency code of coins, the Grand Exchange currency.
	GP = "GP"
	// units is a pseudo currency for quantities.
	units = "QTY"
)

func init() {
	// coins have no fraction.
	money.AddCurrency(GP, "gp", "1 $", ".", ",", 0)
	money.AddCurrency(units, "", "1", ".", ",", 0)
}

// Coins formats an amount of coins, like "1,234 gp". Zero means no data and is
// rendered as "-".
func Coins(v int64) string {
	if v == 0 {
		return "-"
	}
	return money.New(v, GP).Display()
}

// Volume formats a traded quantity with thousands separators. Zero is rendered as "-".
func Volume(v int64) string {
	if v == 0 {
		return "-"
	}
	return money.New(v, units).Display()
}

// Percent formats a percentage with a sign.
func Percent(d decimal.Decimal) string {
	s := d.StringFixed(2) + "%"
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
