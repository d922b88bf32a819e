package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// preferenceSignals are fixed-weight phrases that indicate the sender cares
// about one of the mentioned times. They apply once per email, so with
// several candidates they mostly cancel out; the date- and hour-specific
// signals do the differentiating.
var preferenceSignals = []struct {
	phrase string
	weight float64
}{
	{"prefer", 0.7},
	{"suggest", 0.6},
	{"recommend", 0.7},
	{"better", 0.5},
	{"ideal", 0.8},
	{"good", 0.4},
}

// MostProbableTime selects the single most likely meeting time from the
// extraction result of one email. With no candidates it returns nil, with
// only an original time it returns that, with exactly one proposed time it
// returns it directly, and with several it scores each against contextual
// cues in the raw text. Ties go to the first candidate in text order.
func MostProbableTime(original *TimeCandidate, proposed []TimeCandidate, text string) *TimeCandidate {
	if len(proposed) == 0 {
		return original
	}
	if len(proposed) == 1 {
		return &proposed[0]
	}

	lower := strings.ToLower(text)

	var (
		best      *TimeCandidate
		bestScore float64
	)
	for i := range proposed {
		cand := &proposed[i]
		score := scoreCandidate(cand.At, original, text, lower)
		if best == nil || score > bestScore {
			best = cand
			bestScore = score
		}
	}

	if best == nil {
		return original
	}
	return best
}

func scoreCandidate(at time.Time, original *TimeCandidate, text, lower string) float64 {
	var score float64

	month := at.Format("January")
	day := strconv.Itoa(at.Day())
	hour := strconv.Itoa(hour12(at))
	meridiem := at.Format("PM")

	// Mention of the candidate's own calendar date and clock hour.
	if matchesLoose(month, day, text) {
		score += 0.8
	}
	if matchesLoose(hour, meridiem, text) {
		score += 0.6
	}

	for _, sig := range preferenceSignals {
		if strings.Contains(lower, sig.phrase) {
			score += sig.weight
		}
	}

	if original != nil {
		orig := original.At
		if sameDate(at, orig) {
			score += 0.3
		}
		if at.Hour() >= 9 && at.Hour() <= 17 {
			score += 0.2
		}
		if at.After(orig) {
			score += 0.4
		}
	}

	return score
}

// matchesLoose checks whether a precedes b within a line of the text, the
// loose "January ... 5" / "3 ... PM" style of mention.
func matchesLoose(a, b, text string) bool {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(a) + `.*?` + regexp.QuoteMeta(b))
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}
