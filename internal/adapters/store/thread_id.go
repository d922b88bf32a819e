package store

import (
	"strings"

	"github.com/google/uuid"
)

// reply and forward markers stripped when normalizing a subject for
// thread grouping
var subjectPrefixes = []string{"re:", "fwd:", "fw:"}

// NormalizeSubject reduces a subject line to its thread key: reply and
// forward prefixes removed (repeatedly, for "Re: Re:" chains), lowercased,
// inner whitespace collapsed.
func NormalizeSubject(subject string) string {
	s := strings.TrimSpace(strings.ToLower(subject))
	for {
		stripped := false
		for _, prefix := range subjectPrefixes {
			if strings.HasPrefix(s, prefix) {
				s = strings.TrimSpace(s[len(prefix):])
				stripped = true
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// NewThreadID mints an opaque thread identifier
func NewThreadID() string {
	return "thread_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}
