package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ProyectosAstillero/Operaciones/internal/core"
	applog "github.com/ProyectosAstillero/Operaciones/internal/log"
	"github.com/ProyectosAstillero/Operaciones/internal/services"
)

// topContractors caps the per-contractor chart; the table below it
// always lists every contractor.
const topContractors = 25

type specialtyOption struct {
	Name     string
	Selected bool
}

type contractorRow struct {
	Contractor string
	Total      string
	Width      int
}

type invoiceRow struct {
	Date       string
	Month      string
	Contractor string
	Specialty  string
	Currency   string
	Price      string
	PricePEN   string
}

type facturacionPage struct {
	Error   string
	HasData bool

	From string
	To   string
	Min  string
	Max  string

	Specialties []specialtyOption

	Total       string
	Records     string
	Contractors string

	Chart []contractorRow
	Table []contractorRow
	Rows  []invoiceRow
}

// invoiceFilterFromQuery reads desde/hasta/especialidad. The hidden "f"
// field marks a submitted filter form: only then does an absent
// especialidad mean a deliberately cleared selection rather than a
// first visit.
func invoiceFilterFromQuery(r *http.Request) core.InvoiceFilter {
	var f core.InvoiceFilter
	if t, ok := parseDateParam(r, "desde"); ok {
		f.From = t
	}
	if t, ok := parseDateParam(r, "hasta"); ok {
		f.To = t
	}
	q := r.URL.Query()
	if q.Get("f") != "" {
		sel := q["especialidad"]
		if sel == nil {
			sel = []string{}
		}
		f.Specialties = sel
	}
	return f
}

func (s *Server) handleFacturacion(w http.ResponseWriter, r *http.Request) {
	filter := invoiceFilterFromQuery(r)
	report, err := s.reports.InvoiceReport(r.Context(), filter)
	if err != nil {
		s.logger.WarnContext(r.Context(), "facturación report failed", applog.FieldError, err)
		s.render(w, r, "facturacion.html", facturacionPage{Error: err.Error()})
		return
	}
	s.render(w, r, "facturacion.html", buildFacturacionPage(report, filter))
}

func buildFacturacionPage(report services.InvoiceReport, filter core.InvoiceFilter) facturacionPage {
	page := facturacionPage{HasData: report.HasData}
	if !report.HasData {
		return page
	}

	page.Min = report.MinDate.Format(queryDateLayout)
	page.Max = report.MaxDate.Format(queryDateLayout)
	page.From = report.From.Format(queryDateLayout)
	page.To = report.To.Format(queryDateLayout)

	var allowed map[string]bool
	if filter.Specialties != nil {
		allowed = make(map[string]bool, len(filter.Specialties))
		for _, sp := range filter.Specialties {
			allowed[sp] = true
		}
	}
	for _, sp := range report.Specialties {
		page.Specialties = append(page.Specialties, specialtyOption{
			Name:     sp,
			Selected: allowed == nil || allowed[sp],
		})
	}

	page.Total = formatPEN(report.Summary.TotalPEN)
	page.Records = formatCount(report.Summary.Records)
	page.Contractors = formatCount(report.Summary.Contractors)

	var max decimal.Decimal
	if len(report.Summary.ByContractor) > 0 {
		max = report.Summary.ByContractor[0].TotalPEN
	}
	for i, ct := range report.Summary.ByContractor {
		row := contractorRow{
			Contractor: ct.Contractor,
			Total:      formatPEN(ct.TotalPEN),
			Width:      barWidth(ct.TotalPEN, max),
		}
		page.Table = append(page.Table, row)
		if i < topContractors {
			page.Chart = append(page.Chart, row)
		}
	}

	for _, rec := range report.Summary.Rows {
		page.Rows = append(page.Rows, invoiceRow{
			Date:       rec.Date.Format("02/01/2006"),
			Month:      rec.Month,
			Contractor: rec.Contractor,
			Specialty:  rec.Specialty,
			Currency:   rec.Currency,
			Price:      nullAmount(rec.Price),
			PricePEN:   nullAmount(rec.PricePEN),
		})
	}
	return page
}

func nullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return formatAmount(d.Decimal)
}

func (s *Server) handleAPIFacturacion(w http.ResponseWriter, r *http.Request) {
	filter := invoiceFilterFromQuery(r)
	report, err := s.reports.InvoiceReport(r.Context(), filter)
	if err != nil {
		writeJSONError(w, errStatus(err), err)
		return
	}

	type contractorTotal struct {
		Contratista string          `json:"contratista"`
		TotalPEN    decimal.Decimal `json:"total_pen"`
	}
	type detailRow struct {
		Fecha        string              `json:"fecha"`
		Contratista  string              `json:"contratista"`
		Especialidad string              `json:"especialidad"`
		Moneda       string              `json:"moneda"`
		Precio       decimal.NullDecimal `json:"precio"`
		PrecioPEN    decimal.NullDecimal `json:"precio_pen"`
	}
	resp := struct {
		Desde          string            `json:"desde,omitempty"`
		Hasta          string            `json:"hasta,omitempty"`
		TotalPEN       decimal.Decimal   `json:"total_pen"`
		Registros      int               `json:"registros"`
		Contratistas   int               `json:"contratistas"`
		PorContratista []contractorTotal `json:"por_contratista"`
		Filas          []detailRow       `json:"filas"`
	}{
		TotalPEN:       report.Summary.TotalPEN,
		Registros:      report.Summary.Records,
		Contratistas:   report.Summary.Contractors,
		PorContratista: []contractorTotal{},
		Filas:          []detailRow{},
	}
	if report.HasData {
		resp.Desde = report.From.Format(queryDateLayout)
		resp.Hasta = report.To.Format(queryDateLayout)
	}
	for _, ct := range report.Summary.ByContractor {
		resp.PorContratista = append(resp.PorContratista, contractorTotal{
			Contratista: ct.Contractor,
			TotalPEN:    ct.TotalPEN,
		})
	}
	for _, rec := range report.Summary.Rows {
		resp.Filas = append(resp.Filas, detailRow{
			Fecha:        rec.Date.Format(queryDateLayout),
			Contratista:  rec.Contractor,
			Especialidad: rec.Specialty,
			Moneda:       rec.Currency,
			Precio:       rec.Price,
			PrecioPEN:    rec.PricePEN,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
