package core

import "testing"

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Precio", "Precio"},
		{"  Precio  ", "Precio"},
		{"Fecha de\ncreación", "Fecha de creación"},
		{"Cst.\r\nreales", "Cst.  reales"},
		{"\r\n", ""},
	}
	for _, tc := range cases {
		if got := NormalizeLabel(tc.in); got != tc.out {
			t.Fatalf("NormalizeLabel(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestFindColumnExactBeforeSubstring(t *testing.T) {
	labels := []string{"Meses previstos", "Mes", "Cst.reales del periodo"}

	// The exact match on "Mes" wins over the earlier label that merely
	// contains the candidate.
	if got := FindColumn(labels, "Mes"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	// No exact match: falls back to substring containment.
	if got := FindColumn(labels, "Cst.reales"); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if got := FindColumn(labels, "Presupuesto"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestFindColumnCaseInsensitive(t *testing.T) {
	labels := []string{"MES", "CST.PLAN"}
	if got := FindColumn(labels, "Mes"); got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
	if got := FindColumn(labels, "Cst.plan", "Cst plan"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
}

func TestFindColumnPriorityOrder(t *testing.T) {
	labels := []string{"Cst reales", "Cst.reales"}
	// First candidate wins even though a later candidate matches an
	// earlier column.
	if got := FindColumn(labels, "Cst.reales", "Cst reales"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
}

func TestFindExactIsCaseSensitive(t *testing.T) {
	// "PRECIO" must not resolve as the exact-match candidate "Precio".
	if got := FindExact([]string{"PRECIO"}, "Precio"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := FindExact([]string{"Fecha", "Precio"}, "Precio"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
}

func TestFindExactPriority(t *testing.T) {
	labels := []string{"Proveedor", "Acreedor"}
	if got := FindExact(labels, "Nombre Acreedor", "Acreedor", "Contratista", "Proveedor"); got != 1 {
		t.Fatalf("expected index 1 (Acreedor), got %d", got)
	}
}

func TestFindContaining(t *testing.T) {
	labels := []string{"Documento", "FECHA de creación de liquidación", "Precio"}
	if got := FindContaining(labels, "fecha"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := FindContaining(labels, "moneda"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
