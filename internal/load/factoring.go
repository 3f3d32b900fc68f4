package load

import (
	"fmt"
	"strconv"
	"strings"
)

// FactoringBreakdown is the cost picture of factoring a single load.
// Monetary values are cents-precision floats formatted by the caller.
type FactoringBreakdown struct {
	LoadID        string  `json:"loadId"`
	Gross         float64 `json:"gross"`
	Fee           float64 `json:"fee"`
	Net           float64 `json:"net"`
	Rate          float64 `json:"rate"`
	MarginPercent float64 `json:"marginPercent"`
}

// FactoringCost computes what factoring costs on a load. Loads without
// factoring enabled yield a zero-fee breakdown over the gross amount.
func FactoringCost(l Load) (FactoringBreakdown, error) {
	gross, err := ParseAmount(l.Amount)
	if err != nil {
		return FactoringBreakdown{}, fmt.Errorf("load %s: %w", l.ID, err)
	}
	b := FactoringBreakdown{LoadID: l.ID, Gross: gross, Net: gross, MarginPercent: 100}
	if l.Factoring == nil || !l.Factoring.Enabled || gross == 0 {
		return b, nil
	}
	b.Rate = l.Factoring.Rate
	b.Fee = round2(gross * l.Factoring.Rate)
	b.Net = round2(gross - b.Fee)
	b.MarginPercent = round2(b.Net / gross * 100)
	return b, nil
}

// ParseAmount reads a decimal-as-text dollar amount ("$2,450.00" or
// "2450.00") into a float.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

// FormatAmount renders a float back to the dashboard's dollar style.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(round2(v), 'f', 2, 64)
	// Insert thousands separators into the integer part.
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String() + frac
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
