package core

import (
	"fmt"
	"strings"
)

// noteTimeLayout renders candidate times in the notes text.
const noteTimeLayout = "2006-01-02T15:04:05"

// ComposeNotes turns the extraction flags into a human-readable bullet list,
// or nil when there is nothing to say.
func ComposeNotes(info TimeExtraction, delegate DelegateInfo) *string {
	var notes []string

	if info.Uncertainty {
		notes = append(notes, "Schedule uncertainty indicated")
	}
	if info.AlternativeTimesSuggested {
		notes = append(notes, fmt.Sprintf("Alternative times suggested: %s",
			joinCandidateTimes(info.ProposedTimes)))
	}
	if info.OriginalTime != nil {
		notes = append(notes, fmt.Sprintf("Original time was %s",
			info.OriginalTime.At.Format(noteTimeLayout)))
	}
	if delegate.Name != nil && delegate.Email != nil {
		notes = append(notes, fmt.Sprintf("Delegation arranged to %s (%s)",
			*delegate.Name, *delegate.Email))
	}

	if len(notes) == 0 {
		return nil
	}

	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(note)
	}
	s := b.String()
	return &s
}

func joinCandidateTimes(candidates []TimeCandidate) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.At.Format(noteTimeLayout)
	}
	return strings.Join(parts, ", ")
}
