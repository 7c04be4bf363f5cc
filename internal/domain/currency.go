package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a supported ISO 4217 currency code. Balances and entry amounts
// are always stored as integers in the currency's minor units.
type Currency string

// Supported currency codes.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KWD Currency = "KWD"
)

// DefaultCurrency is applied when a request omits the currency.
const DefaultCurrency = USD

// CurrencyInfo describes a supported currency.
type CurrencyInfo struct {
	Code     Currency
	Decimals int32
	Name     string
}

var supportedCurrencies = map[Currency]CurrencyInfo{
	USD: {Code: USD, Decimals: 2, Name: "US Dollar"},
	EUR: {Code: EUR, Decimals: 2, Name: "Euro"},
	GBP: {Code: GBP, Decimals: 2, Name: "British Pound"},
	JPY: {Code: JPY, Decimals: 0, Name: "Japanese Yen"},
	KWD: {Code: KWD, Decimals: 3, Name: "Kuwaiti Dinar"},
}

// SupportedCurrencies returns the closed table of supported currencies.
func SupportedCurrencies() map[Currency]CurrencyInfo {
	out := make(map[Currency]CurrencyInfo, len(supportedCurrencies))
	for code, info := range supportedCurrencies {
		out[code] = info
	}
	return out
}

// IsSupportedCurrency reports whether code (case-insensitive) is in the table.
func IsSupportedCurrency(code string) bool {
	_, ok := supportedCurrencies[Currency(strings.ToUpper(strings.TrimSpace(code)))]
	return ok
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := supportedCurrencies[c]; !ok {
		return "", fmt.Errorf("%w: %s is not a supported currency code", ErrValidation, code)
	}
	return c, nil
}

// CurrencyDecimals returns the number of minor-unit decimal places for a
// currency, defaulting to 2 for unknown codes.
func CurrencyDecimals(c Currency) int32 {
	if info, ok := supportedCurrencies[c]; ok {
		return info.Decimals
	}
	return 2
}

// ToMinorUnits converts a major-unit amount to integer minor units,
// rounding half away from zero (12.345 KWD -> 12345).
func ToMinorUnits(major decimal.Decimal, c Currency) int64 {
	return major.Shift(CurrencyDecimals(c)).Round(0).IntPart()
}

// ToMajorUnits converts integer minor units back to a major-unit amount
// (12345 KWD -> 12.345).
func ToMajorUnits(minor int64, c Currency) decimal.Decimal {
	return decimal.New(minor, -CurrencyDecimals(c))
}
