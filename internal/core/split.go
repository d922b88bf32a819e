package core

import (
	"regexp"
	"strings"
)

// emailBoundaryRe matches a bare "From: addr" header line, the boundary
// between two concatenated emails in a forwarded or replied chain.
var emailBoundaryRe = regexp.MustCompile(`(?i)^From:\s*[\w.-]+@[\w.-]+\s*$`)

// fromLineRe locates every line that starts with the literal From: token,
// for the simple splitting strategy.
var fromLineRe = regexp.MustCompile(`(?m)^From:`)

// quoteNormalizer maps typographic quotes to their ASCII forms so boundary
// and phrase matching is stable across mail clients.
var quoteNormalizer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// SplitThread splits a raw blob that may contain several concatenated emails
// into individual emails, in their original textual order. A new chunk starts
// at every From: boundary line; accumulated text is kept only when it
// validates as an email. When no boundary yields a valid chunk, the entire
// blob is treated as a single email if it independently validates.
func SplitThread(text string) []RawEmail {
	text = quoteNormalizer.Replace(text)

	var (
		emails  []RawEmail
		current []string
		started bool
	)

	flush := func() {
		if len(current) > 0 && ValidEmailChunk(current) {
			emails = append(emails, RawEmail{
				Text:  strings.Join(current, "\n"),
				Index: len(emails),
			})
		}
		current = nil
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if emailBoundaryRe.MatchString(strings.TrimSpace(line)) {
			flush()
			started = true
		}
		if started {
			current = append(current, line)
		}
	}
	flush()

	if len(emails) == 0 && ValidEmailChunk(lines) {
		emails = append(emails, RawEmail{Text: text, Index: 0})
	}

	return emails
}

// SplitThreadSimple is the simpler splitting strategy: the blob is cut before
// every line-leading From: token and empty results are discarded. No
// per-chunk validation is applied.
func SplitThreadSimple(text string) []RawEmail {
	text = quoteNormalizer.Replace(text)

	starts := fromLineRe.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []RawEmail{{Text: trimmed, Index: 0}}
	}

	var emails []RawEmail
	add := func(chunk string) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			return
		}
		emails = append(emails, RawEmail{Text: chunk, Index: len(emails)})
	}

	if starts[0][0] > 0 {
		add(text[:starts[0][0]])
	}
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		add(text[s[0]:end])
	}

	return emails
}
