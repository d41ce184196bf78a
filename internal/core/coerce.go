// Package core implements the reporting domain: column resolution over
// loosely-labeled spreadsheet tables, the cell coercion policy, invoice
// normalization and aggregation, and the budget summarizer.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceNumber is the single numeric-coercion policy for freeform
// spreadsheet cells. A value that cannot be parsed becomes invalid
// (Valid=false) rather than an error; callers decide what invalid
// means: invoice rows are excluded, budget costs count as zero.
//
// Accepted forms: plain decimals with a dot ("1234.5"), a decimal comma
// when no dot is present ("1234,5"), and comma thousands separators
// when a dot is present ("1,234.50", as produced by styled xlsx cells).
func CoerceNumber(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
