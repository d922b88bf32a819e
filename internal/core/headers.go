package core

import (
	"strings"
)

// headerScanLines bounds how far into an email the header scan looks.
const headerScanLines = 10

// ExtractHeaders pulls From, To and Subject from the first lines of an
// email's text. Prefixes are matched case-insensitively; only the first
// occurrence of each header is kept and values are trimmed. Scanning stops
// early once all three are found. Missing headers stay nil.
func ExtractHeaders(text string) Headers {
	var h Headers

	lines := strings.Split(text, "\n")
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case h.From == nil && strings.HasPrefix(lower, "from:"):
			v := strings.TrimSpace(line[len("from:"):])
			h.From = &v
		case h.To == nil && strings.HasPrefix(lower, "to:"):
			v := strings.TrimSpace(line[len("to:"):])
			h.To = &v
		case h.Subject == nil && strings.HasPrefix(lower, "subject:"):
			v := strings.TrimSpace(line[len("subject:"):])
			h.Subject = &v
		}
		if h.From != nil && h.To != nil && h.Subject != nil {
			break
		}
	}

	return h
}

// ValidEmailChunk reports whether a chunk of lines looks like a real email:
// all three of From, To and Subject appear within the first lines. Used by
// the thread splitter to decide whether a candidate chunk is kept.
func ValidEmailChunk(lines []string) bool {
	var from, to, subject bool

	limit := len(lines)
	if limit > headerScanLines {
		limit = headerScanLines
	}

	for _, line := range lines[:limit] {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(lower, "from:"):
			from = true
		case strings.HasPrefix(lower, "to:"):
			to = true
		case strings.HasPrefix(lower, "subject:"):
			subject = true
		}
	}

	return from && to && subject
}

// ValidEmailText is ValidEmailChunk over a whole text blob.
func ValidEmailText(text string) bool {
	return ValidEmailChunk(strings.Split(text, "\n"))
}
