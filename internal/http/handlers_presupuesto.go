package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProyectosAstillero/Operaciones/internal/core"
	applog "github.com/ProyectosAstillero/Operaciones/internal/log"
	"github.com/ProyectosAstillero/Operaciones/internal/services"
)

const (
	vistaMensual   = "Mensual"
	vistaAcumulado = "Acumulado"
)

type budgetTab struct {
	Key    string
	Title  string
	Active bool
}

type budgetRow struct {
	Label       string
	Plan        string
	Actual      string
	PlanWidth   int
	ActualWidth int
}

type presupuestoPage struct {
	Tabs    []budgetTab
	Archivo string
	Error   string
	Warning string

	From string
	To   string
	Min  string
	Max  string

	Vista   string
	Rows    []budgetRow
	HasRows bool
}

func (s *Server) handlePresupuesto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views := s.reports.BudgetViews()

	page := presupuestoPage{Vista: vistaMensual}
	if r.URL.Query().Get("vista") == vistaAcumulado {
		page.Vista = vistaAcumulado
	}

	requested := r.URL.Query().Get("archivo")
	for _, v := range views {
		if v.Key == requested {
			page.Archivo = v.Key
		}
	}
	if page.Archivo == "" && len(views) > 0 {
		page.Archivo = views[0].Key
	}
	for _, v := range views {
		page.Tabs = append(page.Tabs, budgetTab{
			Key:    v.Key,
			Title:  v.Title,
			Active: v.Key == page.Archivo,
		})
	}
	if page.Archivo == "" {
		page.Warning = "No hay archivos de presupuesto configurados."
		s.render(w, r, "presupuesto.html", page)
		return
	}

	min, max, haveRange := s.reports.BudgetRange(ctx)
	from, to := min, max
	if t, ok := parseDateParam(r, "desde"); ok {
		from = t
	}
	if t, ok := parseDateParam(r, "hasta"); ok {
		to = t
	}
	if haveRange {
		page.Min = min.Format(queryDateLayout)
		page.Max = max.Format(queryDateLayout)
		page.From = from.Format(queryDateLayout)
		page.To = to.Format(queryDateLayout)
	} else {
		page.Warning = "No se pudieron determinar fechas (revisar hoja DATA en los excels)."
	}

	data, err := s.reports.Budget(ctx, page.Archivo)
	if err != nil {
		s.logger.WarnContext(ctx, "presupuesto view failed",
			applog.FieldError, err, applog.FieldView, page.Archivo)
		page.Error = err.Error()
		s.render(w, r, "presupuesto.html", page)
		return
	}

	page.Rows = budgetRows(data, page.Vista, from, to)
	page.HasRows = len(page.Rows) > 0
	s.render(w, r, "presupuesto.html", page)
}

// budgetRows picks the monthly or accumulated series, windows it to the
// selected range and scales the bars against the window maximum.
func budgetRows(data services.BudgetData, vista string, from, to time.Time) []budgetRow {
	type point struct {
		label        string
		plan, actual decimal.Decimal
	}
	var points []point
	if vista == vistaAcumulado {
		for _, m := range core.FilterCumulative(data.Cumulative, from, to) {
			points = append(points, point{m.Label, m.PlanCum, m.ActualCum})
		}
	} else {
		for _, m := range core.FilterMonthly(data.Monthly, from, to) {
			points = append(points, point{m.Label, m.Plan, m.Actual})
		}
	}

	var max decimal.Decimal
	for _, p := range points {
		if p.plan.GreaterThan(max) {
			max = p.plan
		}
		if p.actual.GreaterThan(max) {
			max = p.actual
		}
	}

	rows := make([]budgetRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, budgetRow{
			Label:       p.label,
			Plan:        formatAmount(p.plan),
			Actual:      formatAmount(p.actual),
			PlanWidth:   barWidth(p.plan, max),
			ActualWidth: barWidth(p.actual, max),
		})
	}
	return rows
}

func (s *Server) handleAPIPresupuesto(w http.ResponseWriter, r *http.Request) {
	views := s.reports.BudgetViews()
	key := r.URL.Query().Get("archivo")
	if key == "" && len(views) > 0 {
		key = views[0].Key
	}
	known := false
	for _, v := range views {
		if v.Key == key {
			known = true
		}
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "presupuesto desconocido: " + key,
		})
		return
	}

	data, err := s.reports.Budget(r.Context(), key)
	if err != nil {
		writeJSONError(w, errStatus(err), err)
		return
	}

	var from, to time.Time
	if t, ok := parseDateParam(r, "desde"); ok {
		from = t
	}
	if t, ok := parseDateParam(r, "hasta"); ok {
		to = t
	}

	type monthPoint struct {
		Mes      string          `json:"mes"`
		Etiqueta string          `json:"etiqueta"`
		Plan     decimal.Decimal `json:"plan"`
		Real     decimal.Decimal `json:"real"`
	}
	type cumPoint struct {
		monthPoint
		PlanAcum decimal.Decimal `json:"plan_acum"`
		RealAcum decimal.Decimal `json:"real_acum"`
	}
	resp := struct {
		Archivo   string       `json:"archivo"`
		Mensual   []monthPoint `json:"mensual"`
		Acumulado []cumPoint   `json:"acumulado"`
	}{
		Archivo:   key,
		Mensual:   []monthPoint{},
		Acumulado: []cumPoint{},
	}
	for _, m := range core.FilterMonthly(data.Monthly, from, to) {
		resp.Mensual = append(resp.Mensual, monthPoint{
			Mes:      core.MonthBucket(m.MonthEnd),
			Etiqueta: m.Label,
			Plan:     m.Plan,
			Real:     m.Actual,
		})
	}
	for _, m := range core.FilterCumulative(data.Cumulative, from, to) {
		resp.Acumulado = append(resp.Acumulado, cumPoint{
			monthPoint: monthPoint{
				Mes:      core.MonthBucket(m.MonthEnd),
				Etiqueta: m.Label,
				Plan:     m.Plan,
				Real:     m.Actual,
			},
			PlanAcum: m.PlanCum,
			RealAcum: m.ActualCum,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
