package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceFilter is the user's selection: a closed calendar-date range
// and the set of allowed specialties. A zero From/To leaves that bound
// open; a nil Specialties slice allows every specialty (an empty
// non-nil slice allows none, matching a cleared multi-select).
type InvoiceFilter struct {
	From        time.Time
	To          time.Time
	Specialties []string
}

// ContractorTotal is a per-contractor aggregate of converted prices.
type ContractorTotal struct {
	Contractor string
	TotalPEN   decimal.Decimal
}

// InvoiceSummary is the aggregate over filtered invoice records: the
// headline metrics, the per-contractor totals (descending, stable) and
// the filtered detail rows.
type InvoiceSummary struct {
	TotalPEN     decimal.Decimal
	Records      int
	Contractors  int
	ByContractor []ContractorTotal
	Rows         []InvoiceRecord
}

// ValidInvoices applies the validity filter: a record survives only
// with a parsed date, a converted price and a usable contractor name.
// The upstream export renders missing names as the literal "nan"; an
// empty cell is treated the same way. The filter is idempotent.
func ValidInvoices(records []InvoiceRecord) []InvoiceRecord {
	out := make([]InvoiceRecord, 0, len(records))
	for _, r := range records {
		if !r.DateValid() || !r.PricePEN.Valid {
			continue
		}
		name := strings.ToLower(r.Contractor)
		if name == "" || name == "nan" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SummarizeInvoices filters already-valid records by date range and
// specialty, then aggregates. Contractor groups keep the encounter
// order of the group key; the sort by descending total is stable, so
// equal sums preserve that order.
func SummarizeInvoices(valid []InvoiceRecord, f InvoiceFilter) InvoiceSummary {
	var allowed map[string]bool
	if f.Specialties != nil {
		allowed = make(map[string]bool, len(f.Specialties))
		for _, s := range f.Specialties {
			allowed[s] = true
		}
	}

	var sum InvoiceSummary
	totals := make(map[string]int)
	for _, r := range valid {
		if !f.From.IsZero() && !sameOrAfterDay(r.Date, f.From) {
			continue
		}
		if !f.To.IsZero() && !sameOrBeforeDay(r.Date, f.To) {
			continue
		}
		if allowed != nil && !allowed[r.Specialty] {
			continue
		}
		sum.Rows = append(sum.Rows, r)
		sum.TotalPEN = sum.TotalPEN.Add(r.PricePEN.Decimal)

		if idx, ok := totals[r.Contractor]; ok {
			sum.ByContractor[idx].TotalPEN = sum.ByContractor[idx].TotalPEN.Add(r.PricePEN.Decimal)
		} else {
			totals[r.Contractor] = len(sum.ByContractor)
			sum.ByContractor = append(sum.ByContractor, ContractorTotal{
				Contractor: r.Contractor,
				TotalPEN:   r.PricePEN.Decimal,
			})
		}
	}
	sum.Records = len(sum.Rows)
	sum.Contractors = len(sum.ByContractor)

	sort.SliceStable(sum.ByContractor, func(i, j int) bool {
		return sum.ByContractor[i].TotalPEN.GreaterThan(sum.ByContractor[j].TotalPEN)
	})
	return sum
}

// DateBounds returns the minimum and maximum date across valid records,
// used to seed the date-range picker. ok is false for an empty input.
func DateBounds(valid []InvoiceRecord) (min, max time.Time, ok bool) {
	for _, r := range valid {
		if !ok {
			min, max, ok = r.Date, r.Date, true
			continue
		}
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, ok
}

// DistinctSpecialties returns the sorted distinct specialties of the
// valid base, the option list for the specialty multi-select.
func DistinctSpecialties(valid []InvoiceRecord) []string {
	return distinct(valid, func(r InvoiceRecord) string { return r.Specialty })
}

// DistinctContractors returns the sorted distinct contractor names of
// the valid base.
func DistinctContractors(valid []InvoiceRecord) []string {
	return distinct(valid, func(r InvoiceRecord) string { return r.Contractor })
}

func distinct(records []InvoiceRecord, key func(InvoiceRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
