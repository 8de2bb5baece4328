package instance

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags what a Value holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindNumber
	KindText
	KindShared
)

// UnknownLabel is rendered for values and costs that could not be parsed.
const UnknownLabel = "Unknown"

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindNumber:  "number",
	KindText:    "text",
	KindShared:  "shared",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a normalized column value: a number, a raw text pass-through,
// a shared-core marker, or unknown. The zero Value is Unknown.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a Value that passes a raw provider string through unchanged.
func Text(raw string) Value {
	return Value{kind: KindText, text: raw}
}

// Shared marks a burstable or shared-core offering. The label keeps the
// provider's own spelling ("shared" for GCP, "Shared" for Digital Ocean).
func Shared(label string) Value {
	return Value{kind: KindShared, text: label}
}

// Unknown returns the Value used when parsing failed.
func Unknown() Value {
	return Value{}
}

// Kind reports what the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// String renders the value as it appears in the output CSV.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindText, KindShared:
		return v.text
	default:
		return UnknownLabel
	}
}

// formatNumber renders f in its shortest form, always keeping a fractional
// part for integral values (4 -> "4.0").
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") {
		return s
	}
	return s + ".0"
}

// Cost is a monthly on-demand price. A Cost is either a known amount or
// unknown; the zero Cost is unknown.
type Cost struct {
	amount decimal.Decimal
	known  bool
}

// CostOf returns a known Cost rounded to cents, halves to even.
func CostOf(amount decimal.Decimal) Cost {
	return Cost{amount: amount.RoundBank(2), known: true}
}

// CostFromFloat returns a known Cost holding f rounded to cents. Rounding is
// applied to the exact binary value of f, so 0.0115*730 (8.39499...) yields
// 8.39 and an exact tie such as 9.125 rounds to even. NaN and infinities
// yield an unknown Cost.
func CostFromFloat(f float64) Cost {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return UnknownCost()
	}
	return Cost{amount: decimal.RequireFromString(strconv.FormatFloat(f, 'f', 2, 64)), known: true}
}

// UnknownCost returns the Cost used when the price could not be parsed.
func UnknownCost() Cost {
	return Cost{}
}

// Known reports whether the amount was parsed.
func (c Cost) Known() bool {
	return c.known
}

// Compare orders costs by their rounded amount, so costs that render the
// same compare equal. Unknown costs sort after every known cost.
func (c Cost) Compare(other Cost) int {
	switch {
	case !c.known && !other.known:
		return 0
	case !c.known:
		return 1
	case !other.known:
		return -1
	}
	return c.amount.Cmp(other.amount)
}

// String renders "$" followed by the amount with exactly two decimals, or
// "Unknown".
func (c Cost) String() string {
	if !c.known {
		return UnknownLabel
	}
	return "$" + c.amount.StringFixed(2)
}
