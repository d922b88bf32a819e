package core

import (
	"testing"
	"time"

	"github.com/mikey/mail-sched-extractor/internal/dateparse"
)

// refWednesday is 2025-03-05 10:00, a Wednesday.
var refWednesday = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

// refSunday is 2025-03-02 10:00, a Sunday.
var refSunday = time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)

func newTimeExtractor() *TimeExtractor {
	return NewTimeExtractor(dateparse.New())
}

func TestExtractWeekdayTime(t *testing.T) {
	t.Parallel()

	info := newTimeExtractor().Extract("Let's meet Friday at 2pm.", refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
	if info.OriginalTime.Source != SourceWeekday {
		t.Errorf("Source: got %v, want %v", info.OriginalTime.Source, SourceWeekday)
	}
	if info.AlternativeTimesSuggested {
		t.Error("AlternativeTimesSuggested: got true, want false")
	}
}

func TestExtractNextWeekdaySkipsNearestOccurrence(t *testing.T) {
	t.Parallel()

	// From a Sunday, "next Monday" is 8 days out, not the Monday 1 day away.
	info := newTimeExtractor().Extract("How about next Monday at 3pm?", refSunday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
}

func TestExtractSameWeekdayRollsAWeek(t *testing.T) {
	t.Parallel()

	// Mentioning today's weekday means the next occurrence, a week out.
	info := newTimeExtractor().Extract("Wednesday at 9 AM then.", refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
}

func TestExtractExplicitDate(t *testing.T) {
	t.Parallel()

	info := newTimeExtractor().Extract("The review is on March 20th at 11:30 AM.", refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2025, time.March, 20, 11, 30, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
	if info.OriginalTime.Source != SourceExplicitDate {
		t.Errorf("Source: got %v, want %v", info.OriginalTime.Source, SourceExplicitDate)
	}
}

func TestExtractExplicitDateRollsToNextYear(t *testing.T) {
	t.Parallel()

	lateDecember := time.Date(2025, time.December, 20, 10, 0, 0, 0, time.UTC)
	info := newTimeExtractor().Extract("Can we meet December 3rd at 2 PM?", lateDecember)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2026, time.December, 3, 14, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
}

func TestExtractConfirmationTime(t *testing.T) {
	t.Parallel()

	info := newTimeExtractor().Extract("2 PM works for me.", refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	// Same day: 14:00 is still ahead of the 10:00 reference.
	want := time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
	if info.OriginalTime.Source != SourceConfirmation {
		t.Errorf("Source: got %v, want %v", info.OriginalTime.Source, SourceConfirmation)
	}
}

func TestExtractConfirmationTimePastRollsToNextDay(t *testing.T) {
	t.Parallel()

	info := newTimeExtractor().Extract("9 AM is fine.", refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	want := time.Date(2025, time.March, 6, 9, 0, 0, 0, time.UTC)
	if !info.OriginalTime.At.Equal(want) {
		t.Errorf("OriginalTime: got %v, want %v", info.OriginalTime.At, want)
	}
}

func TestExtractOrdersMatchesByPosition(t *testing.T) {
	t.Parallel()

	text := "Friday at 2pm is taken, so how about March 21st at 4 PM instead?"
	info := newTimeExtractor().Extract(text, refWednesday)

	if info.OriginalTime == nil {
		t.Fatal("OriginalTime: got nil")
	}
	if info.OriginalTime.Source != SourceWeekday {
		t.Errorf("OriginalTime.Source: got %v, want %v (earliest in text)",
			info.OriginalTime.Source, SourceWeekday)
	}
	if len(info.ProposedTimes) != 1 {
		t.Fatalf("ProposedTimes: got %d, want 1", len(info.ProposedTimes))
	}
	if info.ProposedTimes[0].Source != SourceExplicitDate {
		t.Errorf("ProposedTimes[0].Source: got %v, want %v",
			info.ProposedTimes[0].Source, SourceExplicitDate)
	}
	if !info.AlternativeTimesSuggested {
		t.Error("AlternativeTimesSuggested: got false, want true")
	}
}

func TestDetectUncertainty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want bool
	}{
		{"I could POSSIBLY make it", true},
		{"Maybe Thursday?", true},
		{"I'm not sure about that", true},
		{"I'm flexible on timing", true},
		{"My schedule is not flexible", false},
		{"See you Friday at 2pm.", false},
	}

	for _, tc := range cases {
		info := newTimeExtractor().Extract(tc.text, refWednesday)
		if info.Uncertainty != tc.want {
			t.Errorf("Uncertainty(%q): got %v, want %v", tc.text, info.Uncertainty, tc.want)
		}
	}
}

func TestExtractNoTimes(t *testing.T) {
	t.Parallel()

	info := newTimeExtractor().Extract("Could you share the agenda first?", refWednesday)

	if info.OriginalTime != nil {
		t.Errorf("OriginalTime: got %v, want nil", info.OriginalTime)
	}
	if len(info.ProposedTimes) != 0 {
		t.Errorf("ProposedTimes: got %d, want 0", len(info.ProposedTimes))
	}
	if info.AlternativeTimesSuggested {
		t.Error("AlternativeTimesSuggested: got true, want false")
	}
}
