package dateparse

import (
	"testing"
	"time"
)

var ref = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		expr string
		want time.Time
	}{
		{
			name: "month day with ordinal and year",
			expr: "January 5th 3:30 PM 2026",
			want: time.Date(2026, time.January, 5, 15, 30, 0, 0, time.UTC),
		},
		{
			name: "yearless future month day",
			expr: "April 10th 9 AM",
			want: time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "yearless past month day rolls to next year",
			expr: "January 5th 3:30 PM",
			want: time.Date(2026, time.January, 5, 15, 30, 0, 0, time.UTC),
		},
		{
			name: "iso date with clock",
			expr: "2025-03-07 2 PM",
			want: time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "bare clock later today",
			expr: "2:00 PM",
			want: time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "bare clock already past rolls to tomorrow",
			expr: "9:00 AM",
			want: time.Date(2025, time.March, 6, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "tight meridiem",
			expr: "2025-03-07 3pm",
			want: time.Date(2025, time.March, 7, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "noon",
			expr: "2025-03-07 12 PM",
			want: time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight",
			expr: "2025-03-07 12 AM",
			want: time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := New().Resolve(tc.expr, ref, true)
			if !ok {
				t.Fatalf("Resolve(%q): not resolved", tc.expr)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Resolve(%q): got %v, want %v", tc.expr, got, tc.want)
			}
		})
	}
}

func TestResolveRejects(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"",
		"sometime soon",
		"13 PM",
		"3:75 PM",
		"January 40th 3 PM",
	} {
		if _, ok := New().Resolve(expr, ref, true); ok {
			t.Errorf("Resolve(%q): resolved, want rejection", expr)
		}
	}
}

func TestResolveNoFuturePreference(t *testing.T) {
	t.Parallel()

	got, ok := New().Resolve("January 5th 3:30 PM", ref, false)
	if !ok {
		t.Fatal("Resolve: not resolved")
	}
	want := time.Date(2025, time.January, 5, 15, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Resolve: got %v, want %v", got, want)
	}
}

func TestResolveKeepsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, time.March, 5, 10, 0, 0, 0, loc)

	got, ok := New().Resolve("2025-03-07 2 PM", now, true)
	if !ok {
		t.Fatal("Resolve: not resolved")
	}
	if got.Location() != loc {
		t.Errorf("location: got %v, want %v", got.Location(), loc)
	}
}
