package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProyectosAstillero/Operaciones/internal/core"
)

// queryDateLayout is the wire format of desde/hasta parameters and of
// the values fed back into the date inputs.
const queryDateLayout = "2006-01-02"

// parseDateParam reads a YYYY-MM-DD query parameter. A missing or
// malformed value yields ok=false and the caller's default applies.
func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(queryDateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatPEN renders an amount as "S/ 1,234.50".
func formatPEN(d decimal.Decimal) string {
	return "S/ " + formatAmount(d)
}

// formatAmount renders a decimal with two fixed decimals and comma
// thousands grouping, e.g. "1,234.50".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}

// formatCount renders an integer with comma thousands grouping.
func formatCount(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := groupThousands(strconv.Itoa(n))
	if neg {
		return "-" + s
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// barWidth scales a value against the column maximum as a rounded
// percent, keeping tiny non-zero values visible.
func barWidth(value, max decimal.Decimal) int {
	if max.Sign() <= 0 || value.Sign() <= 0 {
		return 0
	}
	pct := value.Mul(decimal.NewFromInt(100)).Div(max).Round(0).IntPart()
	w := int(pct)
	if w > 0 && w < 2 {
		w = 2
	}
	if w > 100 {
		w = 100
	}
	return w
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// errStatus maps load errors to API status codes: a missing workbook is
// 404, a workbook without the expected columns is 422.
func errStatus(err error) int {
	var mfe *core.MissingFileError
	if errors.As(err, &mfe) {
		return http.StatusNotFound
	}
	var mce *core.MissingColumnError
	if errors.As(err, &mce) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
