// Package services exposes the report operations behind the web views:
// memoized spreadsheet loads, invoice summaries, budget summaries and
// the derived global month range.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ProyectosAstillero/Operaciones/internal/cache"
	"github.com/ProyectosAstillero/Operaciones/internal/config"
	"github.com/ProyectosAstillero/Operaciones/internal/core"
	applog "github.com/ProyectosAstillero/Operaciones/internal/log"
	"github.com/ProyectosAstillero/Operaciones/internal/source"
)

// BudgetView is one selectable budget tab.
type BudgetView struct {
	Key   string // query-parameter value, equal to the configured title
	Title string
	Ref   source.Ref
}

// BudgetData is the memoized load result for one budget workbook.
type BudgetData struct {
	Monthly    []core.MonthlyBudget
	Cumulative []core.CumulativeBudget
}

// InvoiceReport is everything the Facturación view needs: the summary
// for the effective filter plus the valid-base facts that seed the
// filter controls.
type InvoiceReport struct {
	Summary     core.InvoiceSummary
	Specialties []string
	Contractors []string
	MinDate     time.Time
	MaxDate     time.Time
	From        time.Time
	To          time.Time
	HasData     bool
}

// ReportService owns the row source and the per-path memo stores. All
// operations are synchronous recomputations over memoized raw data.
type ReportService struct {
	src    source.RowSource
	logger *applog.Logger

	invoiceRef  source.Ref
	budgetViews []BudgetView

	invoices *cache.Store[[]core.InvoiceRecord]
	budgets  *cache.Store[BudgetData]
}

func New(src source.RowSource, logger *applog.Logger, cfg *config.Config) *ReportService {
	views := make([]BudgetView, 0, len(cfg.BudgetFiles))
	for _, f := range cfg.BudgetFiles {
		views = append(views, BudgetView{
			Key:   f.Title,
			Title: f.Title,
			Ref:   source.Ref{Path: cfg.BudgetPath(f), Sheet: core.BudgetSheet},
		})
	}
	return &ReportService{
		src:         src,
		logger:      logger.WithComponent("reports"),
		invoiceRef:  source.Ref{Path: cfg.InvoicePath()},
		budgetViews: views,
		invoices:    cache.NewStore[[]core.InvoiceRecord](),
		budgets:     cache.NewStore[BudgetData](),
	}
}

// Invoices returns the normalized (unfiltered) invoice records,
// loading and memoizing them on first use.
func (s *ReportService) Invoices(ctx context.Context) ([]core.InvoiceRecord, error) {
	return s.invoices.GetOrLoad(s.invoiceRef.Key(), func() ([]core.InvoiceRecord, error) {
		tbl, err := s.src.Read(ctx, s.invoiceRef)
		if err != nil {
			return nil, err
		}
		records, err := core.BuildInvoices(tbl.Columns, tbl.Rows)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "invoice workbook loaded",
			"path", s.invoiceRef.Path, "rows", len(records))
		return records, nil
	})
}

// InvoiceReport computes the Facturación view data. Zero filter bounds
// default to the valid base's min/max dates; a nil specialty selection
// allows every specialty.
func (s *ReportService) InvoiceReport(ctx context.Context, f core.InvoiceFilter) (InvoiceReport, error) {
	records, err := s.Invoices(ctx)
	if err != nil {
		return InvoiceReport{}, err
	}
	valid := core.ValidInvoices(records)

	var report InvoiceReport
	report.MinDate, report.MaxDate, report.HasData = core.DateBounds(valid)
	report.Specialties = core.DistinctSpecialties(valid)
	report.Contractors = core.DistinctContractors(valid)

	if f.From.IsZero() {
		f.From = report.MinDate
	}
	if f.To.IsZero() {
		f.To = report.MaxDate
	}
	report.From, report.To = f.From, f.To
	report.Summary = core.SummarizeInvoices(valid, f)
	return report, nil
}

// BudgetViews lists the configured budget tabs in order.
func (s *ReportService) BudgetViews() []BudgetView {
	return s.budgetViews
}

// Budget returns the monthly and cumulative summaries for the view
// identified by key, loading and memoizing on first use.
func (s *ReportService) Budget(ctx context.Context, key string) (BudgetData, error) {
	view, ok := s.findView(key)
	if !ok {
		return BudgetData{}, fmt.Errorf("presupuesto desconocido: %q", key)
	}
	return s.budgets.GetOrLoad(view.Ref.Key(), func() (BudgetData, error) {
		tbl, err := s.src.Read(ctx, view.Ref)
		if err != nil {
			return BudgetData{}, err
		}
		monthly, cumulative, err := core.SummarizeBudget(tbl.Columns, tbl.Rows)
		if err != nil {
			return BudgetData{}, err
		}
		s.logger.InfoContext(ctx, "budget workbook loaded",
			"path", view.Ref.Path, "months", len(monthly))
		return BudgetData{Monthly: monthly, Cumulative: cumulative}, nil
	})
}

// BudgetRange derives the global min/max month-end across all budget
// views. Views that fail to load or hold no monthly records are
// skipped here; their errors surface when that specific view is
// selected.
func (s *ReportService) BudgetRange(ctx context.Context) (min, max time.Time, ok bool) {
	for _, view := range s.budgetViews {
		data, err := s.Budget(ctx, view.Key)
		if err != nil {
			s.logger.DebugContext(ctx, "budget view skipped for range derivation",
				"view", view.Key, "error", err)
			continue
		}
		if len(data.Monthly) == 0 {
			continue
		}
		first := data.Monthly[0].MonthEnd
		last := data.Monthly[len(data.Monthly)-1].MonthEnd
		if !ok {
			min, max, ok = first, last, true
			continue
		}
		if first.Before(min) {
			min = first
		}
		if last.After(max) {
			max = last
		}
	}
	return min, max, ok
}

func (s *ReportService) findView(key string) (BudgetView, bool) {
	for _, v := range s.budgetViews {
		if v.Key == key {
			return v, true
		}
	}
	return BudgetView{}, false
}
