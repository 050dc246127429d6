package gst

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"bizdocs/internal/domain"
)

// maxWordsAmount keeps the rupee part inside int64 with room to spare.
const maxWordsAmount = 1e15

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scales = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// ToWords renders a rupee amount as a legal "amount in words" sentence, e.g.
// "Rupees One Thousand Two Hundred and Fifty and Fifty Paise only".
// The amount is rounded to the nearest paisa first.
func ToWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("amount %v is not a number: %w", amount, domain.ErrInvalidAmount)
	}
	if amount < 0 {
		return "", fmt.Errorf("amount %.2f is negative: %w", amount, domain.ErrInvalidAmount)
	}
	if amount >= maxWordsAmount {
		return "", fmt.Errorf("amount %.2f exceeds supported range: %w", amount, domain.ErrInvalidAmount)
	}

	d := decimal.NewFromFloat(amount).Round(2)
	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var b strings.Builder
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(strings.Join(spell(rupees), " "))
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(strings.Join(spell(paise), " "))
		b.WriteString(" Paise")
	}
	b.WriteString(" only")
	return b.String(), nil
}

// spell decomposes n into Indian-system words. It peels off crores, lakhs,
// thousands and hundreds recursively, then finishes with the 0-99 lookup.
func spell(n int64) []string {
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, spell(n/s.value)...)
			parts = append(parts, s.name)
			n %= s.value
		}
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		if n < 20 {
			parts = append(parts, ones[n])
		} else {
			parts = append(parts, tens[n/10])
			if n%10 != 0 {
				parts = append(parts, ones[n%10])
			}
		}
	}
	return parts
}
