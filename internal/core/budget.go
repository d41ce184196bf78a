package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetSheet is the sheet name budget workbooks must carry.
const BudgetSheet = "DATA"

// MonthlyBudget is the per-month aggregate of planned and actual cost.
// MonthEnd (the last calendar day of the month) is the sort and group
// key; Label is the fixed Spanish display form, e.g. "Enero 2024".
type MonthlyBudget struct {
	MonthEnd time.Time
	Label    string
	Plan     decimal.Decimal
	Actual   decimal.Decimal
}

// CumulativeBudget extends MonthlyBudget with running sums computed
// over ascending month order.
type CumulativeBudget struct {
	MonthlyBudget
	PlanCum   decimal.Decimal
	ActualCum decimal.Decimal
}

// SummarizeBudget aggregates a DATA-sheet table into monthly and
// cumulative records. The month column parses day-first; rows with an
// unparseable month are dropped before aggregation. Non-numeric cost
// cells count as zero (the standard coercion policy for sums).
func SummarizeBudget(columns []string, rows [][]string) ([]MonthlyBudget, []CumulativeBudget, error) {
	labels := NormalizeLabels(columns)

	mesIdx := FindColumn(labels, "Mes")
	if mesIdx < 0 {
		return nil, nil, &MissingColumnError{
			Field:   "mes",
			Message: "No se encontró la columna 'Mes'.",
		}
	}
	actualIdx := FindColumn(labels, "Cst.reales", "Cst.reales ", "Cst reales", "Cst. reales")
	if actualIdx < 0 {
		return nil, nil, &MissingColumnError{
			Field:   "costo real",
			Message: "No se encontró la columna de costo real (ej: 'Cst.reales').",
		}
	}
	planIdx := FindColumn(labels, "Cst.plan", "Cst.plan ", "Cst plan", "Cst. plan")
	if planIdx < 0 {
		return nil, nil, &MissingColumnError{
			Field:   "costo plan",
			Message: "No se encontró la columna de costo planificado (ej: 'Cst.plan').",
		}
	}

	groups := make(map[time.Time]int)
	var monthly []MonthlyBudget
	for _, row := range rows {
		mes, ok := ParseDayFirst(cell(row, mesIdx))
		if !ok {
			continue
		}
		key := MonthEnd(mes)
		idx, exists := groups[key]
		if !exists {
			idx = len(monthly)
			groups[key] = idx
			monthly = append(monthly, MonthlyBudget{
				MonthEnd: key,
				Label:    SpanishMonthLabel(key),
			})
		}
		if plan := CoerceNumber(cell(row, planIdx)); plan.Valid {
			monthly[idx].Plan = monthly[idx].Plan.Add(plan.Decimal)
		}
		if actual := CoerceNumber(cell(row, actualIdx)); actual.Valid {
			monthly[idx].Actual = monthly[idx].Actual.Add(actual.Decimal)
		}
	}

	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].MonthEnd.Before(monthly[j].MonthEnd)
	})

	cumulative := make([]CumulativeBudget, len(monthly))
	var planCum, actualCum decimal.Decimal
	for i, m := range monthly {
		planCum = planCum.Add(m.Plan)
		actualCum = actualCum.Add(m.Actual)
		cumulative[i] = CumulativeBudget{
			MonthlyBudget: m,
			PlanCum:       planCum,
			ActualCum:     actualCum,
		}
	}
	return monthly, cumulative, nil
}

// FilterMonthly keeps the monthly records whose month-end falls within
// the closed calendar-date range. Zero bounds are open.
func FilterMonthly(in []MonthlyBudget, from, to time.Time) []MonthlyBudget {
	out := make([]MonthlyBudget, 0, len(in))
	for _, m := range in {
		if inRange(m.MonthEnd, from, to) {
			out = append(out, m)
		}
	}
	return out
}

// FilterCumulative keeps cumulative records within the range. Running
// sums are not recomputed: the window shows the cumulative trajectory,
// matching the monthly/accumulated toggle semantics.
func FilterCumulative(in []CumulativeBudget, from, to time.Time) []CumulativeBudget {
	out := make([]CumulativeBudget, 0, len(in))
	for _, m := range in {
		if inRange(m.MonthEnd, from, to) {
			out = append(out, m)
		}
	}
	return out
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && !sameOrAfterDay(t, from) {
		return false
	}
	if !to.IsZero() && !sameOrBeforeDay(t, to) {
		return false
	}
	return true
}
