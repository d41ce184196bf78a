package core

import (
	"testing"
	"time"
)

func TestParseDayFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string // "2006-01-02", "" when unparseable
	}{
		{"05/01/2024", "2024-01-05"},
		{"5/1/2024", "2024-01-05"},
		{"31/12/2023", "2023-12-31"},
		{"15-06-2024", "2024-06-15"},
		{"15.06.2024", "2024-06-15"},
		{"2024-01-05", "2024-01-05"},
		{"2024-01-05 13:45:00", "2024-01-05"},
		{"05/01/2024 08:30:00", "2024-01-05"},
		{"", ""},
		{"no es fecha", ""},
		{"13/13/2024", ""},
	}
	for _, tc := range cases {
		got, ok := ParseDayFirst(tc.in)
		if tc.want == "" {
			if ok {
				t.Fatalf("ParseDayFirst(%q) expected failure, got %v", tc.in, got)
			}
			continue
		}
		if !ok {
			t.Fatalf("ParseDayFirst(%q) unexpectedly failed", tc.in)
		}
		if got.Format("2006-01-02") != tc.want {
			t.Fatalf("ParseDayFirst(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestMonthEnd(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "2024-01-31"},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "2024-02-29"}, // leap year
		{time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), "2023-02-28"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024-12-31"},
	}
	for _, tc := range cases {
		if got := MonthEnd(tc.in).Format("2006-01-02"); got != tc.want {
			t.Fatalf("MonthEnd(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestMonthBucket(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := MonthBucket(d); got != "2024-01" {
		t.Fatalf("MonthBucket = %q, want %q", got, "2024-01")
	}
}

func TestSpanishMonthLabel(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), "Enero 2024"},
		{time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), "Septiembre 2024"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "Diciembre 2023"},
	}
	for _, tc := range cases {
		if got := SpanishMonthLabel(tc.in); got != tc.want {
			t.Fatalf("SpanishMonthLabel(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
