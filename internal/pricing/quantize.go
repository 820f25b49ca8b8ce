package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"bazaar-orders/internal/domain"
)

// Step is the smallest currency denomination the business accepts, in IQD.
// An amount is payable only if it is an exact multiple of Step.
const Step = 250

var stepDec = decimal.NewFromInt(Step)

// Suggestion is one of the two nearest payable alternatives offered when a
// weight-entered purchase lands between steps.
type Suggestion struct {
	Amount   int64           `json:"amount"`
	WeightKg decimal.Decimal `json:"weightKg"`
}

// Quote is the result of converting a buyer's input into an amount/weight
// pair. When Payable is false the quote must not be finalized as-is; the
// buyer picks one of the Suggestions instead.
type Quote struct {
	Amount      decimal.Decimal
	WeightKg    decimal.Decimal
	Payable     bool
	Suggestions []Suggestion
}

// unitPrice guards against division by zero: a missing or invalid price is
// treated as 1 IQD/kg rather than rejected. Known smell, kept for parity
// with the deployed behavior.
func unitPrice(pricePerKg int64) decimal.Decimal {
	if pricePerKg < 1 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(pricePerKg)
}

// Payable reports whether amount is an exact multiple of Step. Zero is
// payable; it represents "nothing entered yet".
func Payable(amount decimal.Decimal) bool {
	return amount.Mod(stepDec).IsZero()
}

// AmountFromWeight returns the raw, unrounded price of weightKg at
// pricePerKg. The result need not be payable.
func AmountFromWeight(weightKg decimal.Decimal, pricePerKg int64) decimal.Decimal {
	return weightKg.Mul(unitPrice(pricePerKg))
}

// WeightFromAmount returns the weight that amount buys at pricePerKg.
func WeightFromAmount(amount decimal.Decimal, pricePerKg int64) decimal.Decimal {
	return amount.Div(unitPrice(pricePerKg))
}

// QuoteFromAmount handles the buyer entering a currency amount directly.
// The amount path is always accepted: the buyer typed an integer number of
// IQD, so no quantization is involved.
func QuoteFromAmount(amount int64, pricePerKg int64) Quote {
	amt := decimal.NewFromInt(amount)
	return Quote{
		Amount:   amt,
		WeightKg: WeightFromAmount(amt, pricePerKg),
		Payable:  true,
	}
}

// QuoteFromWeight handles the buyer entering a weight. When the raw price
// is not a multiple of Step, the quote carries the two nearest payable
// alternatives: floor(raw/Step)*Step (omitted when zero) and the next step
// above it.
func QuoteFromWeight(weightKg decimal.Decimal, pricePerKg int64) Quote {
	raw := AmountFromWeight(weightKg, pricePerKg)
	q := Quote{Amount: raw, WeightKg: weightKg}

	if Payable(raw) {
		q.Payable = true
		return q
	}

	lower := raw.Div(stepDec).Floor().Mul(stepDec)
	upper := lower.Add(stepDec)
	if lower.IsPositive() {
		q.Suggestions = append(q.Suggestions, Suggestion{
			Amount:   lower.IntPart(),
			WeightKg: WeightFromAmount(lower, pricePerKg),
		})
	}
	q.Suggestions = append(q.Suggestions, Suggestion{
		Amount:   upper.IntPart(),
		WeightKg: WeightFromAmount(upper, pricePerKg),
	})
	return q
}

// Finalize fixes a quote into storable figures: the paid amount rounded to
// the nearest whole IQD and the weight kept at millesimal precision. Both
// must come out positive.
func Finalize(amount, weightKg decimal.Decimal) (paidAmount int64, finalWeightKg float64, err error) {
	paidAmount = amount.Round(0).IntPart()
	finalWeightKg, _ = weightKg.Round(3).Float64()
	if paidAmount <= 0 {
		return 0, 0, fmt.Errorf("%w: paid amount must be positive", domain.ErrValidation)
	}
	if finalWeightKg <= 0 {
		return 0, 0, fmt.Errorf("%w: weight must be positive", domain.ErrValidation)
	}
	return paidAmount, finalWeightKg, nil
}

// SanitizeAmount strips everything but digits from a raw amount input.
// Empty or garbage input collapses to 0.
func SanitizeAmount(input string) int64 {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	amt, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}
	return amt.IntPart()
}

// SanitizeWeight strips everything but digits and dots from a raw weight
// input, then parses the longest valid decimal prefix, so "1.2.3" reads as
// 1.2 and garbage collapses to 0.
func SanitizeWeight(input string) decimal.Decimal {
	var b strings.Builder
	dotSeen := false
loop:
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if dotSeen {
				break loop
			}
			dotSeen = true
			b.WriteRune(r)
		}
	}
	s := strings.TrimSuffix(b.String(), ".")
	w, err := decimal.NewFromString(s)
	if err != nil || w.IsNegative() {
		return decimal.Zero
	}
	return w
}
