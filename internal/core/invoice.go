package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// USDToPEN is the fixed reporting conversion applied to USD prices.
var USDToPEN = decimal.RequireFromString("3.4")

// Sentinel values substituted when an optional invoice column is absent.
const (
	NoCurrency  = "(sin moneda)"
	NoSpecialty = "(sin especialidad)"
)

// Known export artifact: pandas-style label given to an unlabeled
// column by the upstream Excel export.
const strayColumnLabel = "Unnamed: 18"

// InvoiceRecord is one invoice row after column resolution, type
// coercion and currency conversion. Records are immutable once built;
// filtering and aggregation produce new values.
type InvoiceRecord struct {
	Date       time.Time // zero when the source value failed to parse
	Month      string    // "YYYY-MM" bucket, empty when Date is invalid
	Contractor string    // trimmed; "" or "nan" marks an invalid row
	Currency   string    // raw cell, or NoCurrency when column absent
	Specialty  string    // trimmed, or NoSpecialty when column absent
	Price      decimal.NullDecimal
	PricePEN   decimal.NullDecimal // converted exactly once at build time
}

// DateValid reports whether the source date cell parsed.
func (r InvoiceRecord) DateValid() bool {
	return !r.Date.IsZero()
}

// invoiceColumns is the resolved column reference for an invoice sheet,
// produced once at load time so row access never re-resolves labels.
type invoiceColumns struct {
	date       int
	price      int
	contractor int
	currency   int // -1 when absent (optional)
	specialty  int // -1 when absent (optional)
}

func resolveInvoiceColumns(labels []string) (invoiceColumns, error) {
	var cols invoiceColumns

	// The date column is the only substring-resolved field; price and
	// contractor keep their stricter exact-match rules on purpose, so
	// ambiguous real-world sheets resolve the same columns as before.
	cols.date = FindContaining(labels, "fecha")
	if cols.date < 0 {
		return cols, &MissingColumnError{
			Field:   "fecha",
			Message: "No se encontró una columna de fecha (ej: 'Fecha de creación de liquidación').",
		}
	}
	cols.price = FindExact(labels, "Precio")
	if cols.price < 0 {
		return cols, &MissingColumnError{
			Field:   "precio",
			Message: "No se encontró la columna 'Precio'.",
		}
	}
	cols.contractor = FindExact(labels, "Nombre Acreedor", "Acreedor", "Contratista", "Proveedor")
	if cols.contractor < 0 {
		return cols, &MissingColumnError{
			Field:   "contratista",
			Message: "No se encontró columna de contratista (ej: 'Nombre Acreedor').",
		}
	}
	cols.currency = FindExact(labels, "Mon/")
	cols.specialty = FindExact(labels, "Especialidad")
	return cols, nil
}

// BuildInvoices derives one InvoiceRecord per input row of the first
// sheet of the invoice workbook. Rows are not filtered here; the
// validity filter runs at aggregation time.
func BuildInvoices(columns []string, rows [][]string) ([]InvoiceRecord, error) {
	labels := NormalizeLabels(columns)
	labels, rows = dropArtifactColumns(labels, rows)

	cols, err := resolveInvoiceColumns(labels)
	if err != nil {
		return nil, err
	}

	records := make([]InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		rec := InvoiceRecord{
			Contractor: strings.TrimSpace(cell(row, cols.contractor)),
			Price:      CoerceNumber(cell(row, cols.price)),
		}
		if d, ok := ParseDayFirst(cell(row, cols.date)); ok {
			rec.Date = d
			rec.Month = MonthBucket(d)
		}
		if cols.currency >= 0 {
			rec.Currency = cell(row, cols.currency)
		} else {
			rec.Currency = NoCurrency
		}
		if cols.specialty >= 0 {
			rec.Specialty = strings.TrimSpace(cell(row, cols.specialty))
		} else {
			rec.Specialty = NoSpecialty
		}
		rec.PricePEN = convertToPEN(rec.Price, rec.Currency)
		records = append(records, rec)
	}
	return records, nil
}

// convertToPEN applies the fixed USD conversion. The currency check
// trims and uppercases, so " Usd " converts like "USD"; every other
// value, the sentinel included, leaves the price unchanged.
func convertToPEN(price decimal.NullDecimal, currency string) decimal.NullDecimal {
	if !price.Valid {
		return decimal.NullDecimal{}
	}
	if strings.ToUpper(strings.TrimSpace(currency)) == "USD" {
		return decimal.NullDecimal{Decimal: price.Decimal.Mul(USDToPEN), Valid: true}
	}
	return price
}

// dropArtifactColumns removes the known stray "Unnamed: 18" export
// artifact and any fully-unlabeled trailing columns, adjusting rows to
// match the surviving label order.
func dropArtifactColumns(labels []string, rows [][]string) ([]string, [][]string) {
	last := len(labels)
	for last > 0 && labels[last-1] == "" {
		last--
	}

	keep := make([]int, 0, last)
	for i := 0; i < last; i++ {
		if labels[i] == strayColumnLabel {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == len(labels) {
		return labels, rows
	}

	outLabels := make([]string, len(keep))
	for n, i := range keep {
		outLabels[n] = labels[i]
	}
	outRows := make([][]string, len(rows))
	for r, row := range rows {
		out := make([]string, len(keep))
		for n, i := range keep {
			out[n] = cell(row, i)
		}
		outRows[r] = out
	}
	return outLabels, outRows
}
