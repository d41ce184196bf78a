// Package google reads sheet tables from a single Google Sheets
// spreadsheet instead of local xlsx files. Each logical workbook maps
// to a tab: the workbook's base name for its first sheet, or
// "<base> <sheet>" for a named sheet (e.g. "Maniobras DATA").
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/ProyectosAstillero/Operaciones/internal/source"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ source.RowSource = (*Source)(nil)

// NewFromEnv creates a read-only Sheets source from the environment.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Source, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Source{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inlineJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inlineJSON == "" && credFile == "" {
		credFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inlineJSON != "":
		credentialsJSON = []byte(inlineJSON)
	case credFile != "":
		b, err := os.ReadFile(credFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// Read fetches the tab mapped from ref and returns it as a Table with
// the first row as header.
func (s *Source) Read(ctx context.Context, ref source.Ref) (source.Table, error) {
	tab := tabName(ref)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, "'"+tab+"'").Context(ctx).Do()
	if err != nil {
		return source.Table{}, fmt.Errorf("leer hoja %q del documento %s: %w", tab, s.spreadsheetID, err)
	}
	if len(resp.Values) == 0 {
		return source.Table{}, nil
	}
	t := source.Table{Columns: toStrings(resp.Values[0])}
	for _, row := range resp.Values[1:] {
		t.Rows = append(t.Rows, toStrings(row))
	}
	return t, nil
}

func tabName(ref source.Ref) string {
	base := strings.TrimSuffix(filepath.Base(ref.Path), filepath.Ext(ref.Path))
	if ref.Sheet == "" {
		return base
	}
	return base + " " + ref.Sheet
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}
