// Package pricing holds the whole-shilling money helpers shared by the
// cart, checkout, and order surfaces.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountKES returns percent of amount, rounded half up to a whole
// shilling. Negative inputs yield zero.
func DiscountKES(amountKES, percent int) int {
	if amountKES <= 0 || percent <= 0 {
		return 0
	}
	discount := decimal.NewFromInt(int64(amountKES)).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return int(discount.IntPart())
}

// SavingsPercent reports how far price sits below original, rounded to the
// nearest whole percent. Returns 0 when there is no markdown.
func SavingsPercent(originalKES, priceKES int) int {
	if originalKES <= 0 || priceKES >= originalKES {
		return 0
	}
	saved := decimal.NewFromInt(int64(originalKES - priceKES)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(originalKES))).
		Round(0)
	return int(saved.IntPart())
}

// FormatKES renders a whole-shilling amount as "KSh 3,000".
func FormatKES(amountKES int) string {
	negative := amountKES < 0
	if negative {
		amountKES = -amountKES
	}

	digits := fmt.Sprintf("%d", amountKES)
	var grouped []byte
	for i, ch := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, ch)
	}

	if negative {
		return fmt.Sprintf("KSh -%s", grouped)
	}
	return fmt.Sprintf("KSh %s", grouped)
}
