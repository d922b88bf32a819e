package core

import (
	"testing"
	"time"
)

func candidateAt(y int, m time.Month, d, h, min int) TimeCandidate {
	return TimeCandidate{
		At:     time.Date(y, m, d, h, min, 0, 0, time.UTC),
		Source: SourceExplicitDate,
	}
}

func TestMostProbableTimeNoCandidates(t *testing.T) {
	t.Parallel()

	if got := MostProbableTime(nil, nil, "no times here"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestMostProbableTimeOnlyOriginal(t *testing.T) {
	t.Parallel()

	orig := candidateAt(2025, time.March, 7, 14, 0)
	got := MostProbableTime(&orig, nil, "Friday at 2pm")

	if got == nil || !got.At.Equal(orig.At) {
		t.Errorf("got %v, want %v", got, orig.At)
	}
}

func TestMostProbableTimeSingleProposed(t *testing.T) {
	t.Parallel()

	orig := candidateAt(2025, time.March, 7, 14, 0)
	alt := candidateAt(2025, time.March, 10, 15, 0)
	got := MostProbableTime(&orig, []TimeCandidate{alt}, "whatever")

	if got == nil || !got.At.Equal(alt.At) {
		t.Errorf("got %v, want %v", got, alt.At)
	}
}

func TestMostProbableTimePrefersMentionedDate(t *testing.T) {
	t.Parallel()

	a := candidateAt(2025, time.January, 5, 15, 0)
	b := candidateAt(2025, time.January, 6, 16, 0)
	text := "January 6 at 4 PM would be ideal"

	got := MostProbableTime(nil, []TimeCandidate{a, b}, text)

	if got == nil || !got.At.Equal(b.At) {
		t.Errorf("got %v, want %v", got, b.At)
	}
}

func TestMostProbableTimeTieBreaksFirstSeen(t *testing.T) {
	t.Parallel()

	a := candidateAt(2025, time.July, 1, 22, 0)
	b := candidateAt(2025, time.July, 2, 23, 0)

	// Nothing in the text distinguishes the candidates; the first in text
	// order must win, on every run.
	for i := 0; i < 20; i++ {
		got := MostProbableTime(nil, []TimeCandidate{a, b}, "either slot is possible")
		if got == nil || !got.At.Equal(a.At) {
			t.Fatalf("run %d: got %v, want first candidate %v", i, got, a.At)
		}
	}
}

func TestMostProbableTimeOriginalContextBonuses(t *testing.T) {
	t.Parallel()

	orig := candidateAt(2025, time.March, 7, 10, 0)
	// Same date as original, business hours, and later than original.
	strong := candidateAt(2025, time.March, 7, 14, 0)
	// Different date, outside business hours, earlier.
	weak := candidateAt(2025, time.March, 6, 7, 0)

	got := MostProbableTime(&orig, []TimeCandidate{weak, strong}, "pick one")

	if got == nil || !got.At.Equal(strong.At) {
		t.Errorf("got %v, want %v", got, strong.At)
	}
}
