package core

import (
	"strconv"
	"strings"
	"time"
)

// Day-first layouts tried in order when coercing date cells. Go accepts
// one or two digits for the numeric day/month fields, so "2/1/2006"
// also parses "05/01/2024".
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDayFirst coerces a date cell using day-first conventions.
// An unparseable value yields ok=false, never an error; the row-level
// consequence (exclusion) is decided by the caller.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthEnd truncates t to the last calendar day of its month, the
// sortable grouping key for budget summaries.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// MonthBucket renders the "YYYY-MM" bucket used by invoice records.
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}

var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// SpanishMonthLabel renders the fixed-locale display label, e.g.
// "Enero 2024".
func SpanishMonthLabel(t time.Time) string {
	return spanishMonths[int(t.Month())-1] + " " + strconv.Itoa(t.Year())
}

// sameOrAfterDay and sameOrBeforeDay compare by calendar date only,
// ignoring any time-of-day component.
func sameOrAfterDay(t, bound time.Time) bool {
	return !dayOf(t).Before(dayOf(bound))
}

func sameOrBeforeDay(t, bound time.Time) bool {
	return !dayOf(t).After(dayOf(bound))
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
