package core

import (
	"testing"
	"time"
)

func recordWithTime(at time.Time, raw string) *ExtractionRecord {
	t := at
	return &ExtractionRecord{
		ProposedTime: &t,
		AdditionalInfo: TimeExtraction{
			OriginalTime: &TimeCandidate{At: at, Source: SourceWeekday},
		},
		RawText: raw,
	}
}

func TestReconcileThreadPropagatesConfirmedTime(t *testing.T) {
	t.Parallel()

	fridayTwoPM := time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC)

	first := recordWithTime(fridayTwoPM, "Let's meet Friday at 2pm.")
	second := &ExtractionRecord{RawText: "Friday works for me."}

	ReconcileThread(Thread{first, second})

	if second.ProposedTime == nil {
		t.Fatal("second.ProposedTime: got nil, want propagated time")
	}
	if !second.ProposedTime.Equal(fridayTwoPM) {
		t.Errorf("second.ProposedTime: got %v, want %v", second.ProposedTime, fridayTwoPM)
	}
	if second.AdditionalInfo.OriginalTime == nil ||
		!second.AdditionalInfo.OriginalTime.At.Equal(fridayTwoPM) {
		t.Errorf("second.AdditionalInfo.OriginalTime: got %v, want %v",
			second.AdditionalInfo.OriginalTime, fridayTwoPM)
	}
}

func TestReconcileThreadNoConfirmationNoChange(t *testing.T) {
	t.Parallel()

	first := recordWithTime(time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC),
		"Let's meet Friday at 2pm.")
	second := &ExtractionRecord{RawText: "Could you share the agenda first?"}

	ReconcileThread(Thread{first, second})

	if second.ProposedTime != nil {
		t.Errorf("second.ProposedTime: got %v, want nil", second.ProposedTime)
	}
}

func TestReconcileThreadKeepsExistingTime(t *testing.T) {
	t.Parallel()

	first := recordWithTime(time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC),
		"Friday at 2pm?")
	mondayThreePM := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	second := recordWithTime(mondayThreePM, "No, Monday at 3pm. Confirmed.")

	ReconcileThread(Thread{first, second})

	if !second.ProposedTime.Equal(mondayThreePM) {
		t.Errorf("second.ProposedTime: got %v, want %v (unchanged)",
			second.ProposedTime, mondayThreePM)
	}
}

func TestReconcileThreadSingleHopOnly(t *testing.T) {
	t.Parallel()

	first := recordWithTime(time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC),
		"Friday at 2pm?")
	second := &ExtractionRecord{RawText: "Could you share the agenda?"}
	third := &ExtractionRecord{RawText: "Friday works for me."}

	ReconcileThread(Thread{first, second, third})

	// The confirmation in the third email only looks one record back, and
	// the second record carries no proposed time.
	if third.ProposedTime != nil {
		t.Errorf("third.ProposedTime: got %v, want nil (single-hop lookback)",
			third.ProposedTime)
	}
}

func TestConfirmsTime(t *testing.T) {
	t.Parallel()

	fridayTwoPM := time.Date(2025, time.March, 7, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		text string
		want bool
	}{
		{"Friday at 2:00 PM it is", true},
		{"2:00 PM works great", true},
		{"friday is fine with me", true},
		{"All set, see you there", true},
		{"Can we do Monday instead?", false},
		{"3:00 PM works", false},
	}

	for _, tc := range cases {
		if got := ConfirmsTime(fridayTwoPM, tc.text); got != tc.want {
			t.Errorf("ConfirmsTime(%q): got %v, want %v", tc.text, got, tc.want)
		}
	}
}
