package core

import "strings"

// NormalizeLabel cleans a raw column label as read from a sheet:
// carriage returns and newlines collapse to spaces, surrounding
// whitespace is trimmed.
func NormalizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// NormalizeLabels applies NormalizeLabel to every label, preserving order.
func NormalizeLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = NormalizeLabel(l)
	}
	return out
}

// FindColumn resolves a logical field against normalized labels using
// the loose strategy: candidates are tried in priority order, first with
// a case-insensitive exact match, then with case-insensitive substring
// containment (candidate found inside the label). Returns the column
// index, or -1 when no candidate matches.
func FindColumn(labels []string, candidates ...string) int {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(strings.TrimSpace(l))
	}
	for _, cand := range candidates {
		key := strings.ToLower(strings.TrimSpace(cand))
		for i, l := range lowered {
			if l == key {
				return i
			}
		}
	}
	for _, cand := range candidates {
		key := strings.ToLower(strings.TrimSpace(cand))
		for i, l := range lowered {
			if strings.Contains(l, key) {
				return i
			}
		}
	}
	return -1
}

// FindExact resolves a field by case-sensitive exact match only,
// trying candidates in priority order. The invoice sheet fields keep
// this stricter rule: "PRECIO" must not resolve as "Precio".
func FindExact(labels []string, candidates ...string) int {
	for _, cand := range candidates {
		for i, l := range labels {
			if l == cand {
				return i
			}
		}
	}
	return -1
}

// FindContaining returns the first label containing sub,
// case-insensitively. The invoice date column is the only field
// resolved this way.
func FindContaining(labels []string, sub string) int {
	key := strings.ToLower(sub)
	for i, l := range labels {
		if strings.Contains(strings.ToLower(l), key) {
			return i
		}
	}
	return -1
}

// cell returns row[idx] or "" when the row is shorter than idx+1.
// Spreadsheet readers commonly omit trailing empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
