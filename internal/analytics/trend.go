package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ChangePercent is the whole-number percentage change from previous to
// current. A zero baseline yields 100 when there is any current activity
// and 0 otherwise.
func ChangePercent(current, previous decimal.Decimal) int {
	if previous.IsPositive() {
		return int(current.Sub(previous).Div(previous).Mul(hundred).Round(0).IntPart())
	}
	if current.IsPositive() {
		return 100
	}

	return 0
}

func changeInt(current, previous int) int {
	return ChangePercent(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

func changeFloat(current, previous float64) int {
	return ChangePercent(decimal.NewFromFloat(current), decimal.NewFromFloat(previous))
}

// share is part/total as a percentage truncated to two places, so shares of
// one total never add up to more than 100.
func share(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}

	f, _ := part.Mul(hundred).Div(total).Truncate(2).Float64()
	return f
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
