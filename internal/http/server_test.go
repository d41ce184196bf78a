package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ProyectosAstillero/Operaciones/internal/config"
	applog "github.com/ProyectosAstillero/Operaciones/internal/log"
	"github.com/ProyectosAstillero/Operaciones/internal/services"
	"github.com/ProyectosAstillero/Operaciones/internal/source"
	"github.com/ProyectosAstillero/Operaciones/internal/source/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:        "8080",
		DataBackend: "excel",
		DataDir:     "data",
		InvoiceFile: "facturas.xlsx",
		BudgetFiles: []config.BudgetFile{
			{Title: "Maniobras", File: "Maniobras.xlsx"},
			{Title: "Varadero", File: "Varadero.xlsx"},
		},
	}
}

func newTestServer(src *memory.Source) *Server {
	logger := applog.New(applog.DefaultConfig())
	reports := services.New(src, logger, testConfig())
	return NewServer(":0", reports, logger)
}

func seedInvoices(src *memory.Source) {
	src.Put(source.Ref{Path: "data/facturas.xlsx"}, source.Table{
		Columns: []string{"Fecha", "Precio", "Mon/", "Nombre Acreedor", "Especialidad"},
		Rows: [][]string{
			{"05/01/2024", "100", "USD", "Acme", "Soldadura"},
			{"10/02/2024", "50", "PEN", "Bravo", "Pintura"},
		},
	})
}

func seedBudget(src *memory.Source, file string) {
	src.Put(source.Ref{Path: "data/" + file, Sheet: "DATA"}, source.Table{
		Columns: []string{"Mes", "Cst.plan", "Cst.reales"},
		Rows: [][]string{
			{"15/01/2024", "100", "80"},
			{"10/02/2024", "50", "60"},
		},
	})
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(memory.New())

	rr := get(t, srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Astillero-Operaciones") {
		t.Fatalf("index body missing heading")
	}
	if !strings.Contains(rr.Body.String(), "Maniobras") {
		t.Fatalf("index body missing configured budget link")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := get(t, srv, path); rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	if rr := get(t, srv, "/no-such-page"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(memory.New())
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/facturacion", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestFacturacionPage(t *testing.T) {
	src := memory.New()
	seedInvoices(src)
	srv := newTestServer(src)

	rr := get(t, srv, "/facturacion")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	// 100 USD * 3.4 + 50 PEN
	if !strings.Contains(body, "S/ 390.00") {
		t.Fatalf("body missing converted total:\n%s", body)
	}
	for _, want := range []string{"Acme", "Bravo", "Soldadura", "Pintura"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestFacturacionSpecialtyFilter(t *testing.T) {
	src := memory.New()
	seedInvoices(src)
	srv := newTestServer(src)

	rr := get(t, srv, "/facturacion?f=1&especialidad=Pintura")
	body := rr.Body.String()
	if !strings.Contains(body, "S/ 50.00") {
		t.Fatalf("expected filtered total 50.00:\n%s", body)
	}
	if strings.Contains(body, "Acme") {
		t.Fatalf("filtered-out contractor still present")
	}
}

func TestFacturacionMissingFileRendersError(t *testing.T) {
	srv := newTestServer(memory.New())

	rr := get(t, srv, "/facturacion")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No se encontró el archivo") {
		t.Fatalf("expected in-page missing-file error")
	}
}

func TestPresupuestoPage(t *testing.T) {
	src := memory.New()
	seedBudget(src, "Maniobras.xlsx")
	seedBudget(src, "Varadero.xlsx")
	srv := newTestServer(src)

	rr := get(t, srv, "/presupuesto")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Enero 2024", "Febrero 2024", "100.00", "80.00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}

	// Accumulated view shows running sums.
	rr = get(t, srv, "/presupuesto?archivo=Maniobras&vista=Acumulado")
	body = rr.Body.String()
	if !strings.Contains(body, "150.00") || !strings.Contains(body, "140.00") {
		t.Fatalf("accumulated view missing running sums:\n%s", body)
	}
}

func TestPresupuestoMissingFileKeepsOtherTabs(t *testing.T) {
	src := memory.New()
	// Only Maniobras exists; Varadero must error in place.
	seedBudget(src, "Maniobras.xlsx")
	srv := newTestServer(src)

	rr := get(t, srv, "/presupuesto?archivo=Varadero")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "No se encontró el archivo") {
		t.Fatalf("expected in-page missing-file error")
	}
	if !strings.Contains(body, "Maniobras") {
		t.Fatalf("tab navigation missing despite failing view")
	}

	// The healthy tab still renders data.
	rr = get(t, srv, "/presupuesto?archivo=Maniobras")
	if !strings.Contains(rr.Body.String(), "Enero 2024") {
		t.Fatalf("healthy view broken by sibling failure")
	}
}

func TestAPIFacturacion(t *testing.T) {
	src := memory.New()
	seedInvoices(src)
	srv := newTestServer(src)

	rr := get(t, srv, "/api/facturacion")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var resp struct {
		TotalPEN       string `json:"total_pen"`
		Registros      int    `json:"registros"`
		Contratistas   int    `json:"contratistas"`
		PorContratista []struct {
			Contratista string `json:"contratista"`
			TotalPEN    string `json:"total_pen"`
		} `json:"por_contratista"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.TotalPEN != "390" || resp.Registros != 2 || resp.Contratistas != 2 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if len(resp.PorContratista) != 2 || resp.PorContratista[0].Contratista != "Acme" {
		t.Fatalf("unexpected contractor ordering: %+v", resp.PorContratista)
	}
}

func TestAPIFacturacionMissingFile(t *testing.T) {
	srv := newTestServer(memory.New())
	if rr := get(t, srv, "/api/facturacion"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAPIPresupuesto(t *testing.T) {
	src := memory.New()
	seedBudget(src, "Maniobras.xlsx")
	srv := newTestServer(src)

	rr := get(t, srv, "/api/presupuesto?archivo=Maniobras")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var resp struct {
		Archivo string `json:"archivo"`
		Mensual []struct {
			Mes  string `json:"mes"`
			Plan string `json:"plan"`
			Real string `json:"real"`
		} `json:"mensual"`
		Acumulado []struct {
			PlanAcum string `json:"plan_acum"`
			RealAcum string `json:"real_acum"`
		} `json:"acumulado"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Archivo != "Maniobras" || len(resp.Mensual) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Mensual[0].Mes != "2024-01" || resp.Mensual[0].Plan != "100" {
		t.Fatalf("unexpected first month: %+v", resp.Mensual[0])
	}
	if resp.Acumulado[1].PlanAcum != "150" || resp.Acumulado[1].RealAcum != "140" {
		t.Fatalf("unexpected accumulated sums: %+v", resp.Acumulado[1])
	}

	if rr := get(t, srv, "/api/presupuesto?archivo=Desconocido"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown view, got %d", rr.Code)
	}
}
