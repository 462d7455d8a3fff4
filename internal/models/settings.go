package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Setting is a single persisted key/value pair.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Settings is the user-level configuration passed explicitly to the
// components that format money or read persisted flags.
type Settings struct {
	CurrencyCode     string `json:"currency_code"`
	CurrencySymbol   string `json:"currency_symbol"`
	LoggedIn         bool   `json:"logged_in"`
	OnboardingSeen   bool   `json:"onboarding_seen"`
	ConflictResolved bool   `json:"conflict_resolved"`
}

// Setting keys
const (
	SettingCurrencyCode     = "currency_code"
	SettingCurrencySymbol   = "currency_symbol"
	SettingLoggedIn         = "logged_in"
	SettingOnboardingSeen   = "onboarding_seen"
	SettingConflictResolved = "conflict_resolved"
)

// FormatAmount renders an amount with the currency symbol, two decimals and
// comma thousands separators, e.g. "$1,500.00" or "-$20.00".
func (s Settings) FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + s.CurrencySymbol + b.String() + "." + frac
}
