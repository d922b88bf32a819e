package core

import (
	"fmt"
	"regexp"
	"time"
)

var bareConfirmationRe = regexp.MustCompile(`(?i)(?:confirmed|all set|works perfectly)`)

// ReconcileThread walks a chronologically ordered thread (oldest first) and
// propagates a previously proposed time into a later email that confirms it
// without restating it. Only the immediately preceding record is consulted:
// a single-hop lookback, inherited behavior that widening would change
// observably.
func ReconcileThread(records Thread) {
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.ProposedTime == nil || cur.ProposedTime != nil {
			continue
		}
		if !ConfirmsTime(*prev.ProposedTime, cur.RawText) {
			continue
		}

		at := *prev.ProposedTime
		cur.ProposedTime = &at
		cur.AdditionalInfo.OriginalTime = &TimeCandidate{
			At:     at,
			Source: SourceConfirmation,
			Text:   "thread confirmation",
		}
	}
}

// ConfirmsTime reports whether text agrees to the given instant: its clock
// string or weekday name in confirmation phrasing, or a bare "confirmed" /
// "all set" / "works perfectly".
func ConfirmsTime(t time.Time, text string) bool {
	clock := regexp.QuoteMeta(t.Format("3:04 PM"))
	weekday := t.Weekday().String()

	patterns := []string{
		fmt.Sprintf(`(?i)%s\s+at\s+%s`, weekday, clock),
		fmt.Sprintf(`(?i)%s\s+(?:works|is fine|is good|is perfect)`, clock),
		fmt.Sprintf(`(?i)%s\s+(?:works|is fine|is good|is perfect)`, weekday),
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			return true
		}
	}

	return bareConfirmationRe.MatchString(text)
}
