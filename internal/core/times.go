package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Time expression patterns. All three classes are scanned independently and
// their matches merged by position in the text.
var (
	// "January 5th at 3:30 PM" — month name, day with optional ordinal
	// suffix, clock time with meridiem.
	explicitDateRe = regexp.MustCompile(`(?i)((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?)\s+(?:at\s+)?(\d{1,2}(?::\d{2})?\s*(?:AM|PM))`)

	// "next Monday at 3pm", "Tues at 10:30 AM" — optional next qualifier,
	// abbreviated or full weekday name, clock time.
	weekdayTimeRe = regexp.MustCompile(`(?i)((?:next\s+)?(?:Mon|Tues|Wednes|Thurs|Fri|Satur|Sun)(?:day)?)'?s?\s+(?:at\s+)?(\d{1,2}(?::\d{2})?\s*(?:AM|PM))`)

	// "2 PM works" — a clock time immediately followed by a confirmation
	// verb phrase, agreeing to a time without restating the date.
	confirmationRe = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:AM|PM))\s+(?:works|is fine|is good|is perfect|is set|confirmed)`)
)

// Uncertainty cues. Presence of any one marks the email as uncertain;
// "flexible" is guarded against a preceding "not".
var uncertaintyRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)possibl(?:e|y)`),
	regexp.MustCompile(`(?i)would it be`),
	regexp.MustCompile(`(?i)can we`),
	regexp.MustCompile(`(?i)maybe`),
	regexp.MustCompile(`(?i)not sure`),
	regexp.MustCompile(`(?i)if possible`),
	regexp.MustCompile(`(?i)(?:could|would) you`),
	regexp.MustCompile(`(?i)available`),
	regexp.MustCompile(`(?i)tentative`),
	regexp.MustCompile(`(?i)might be able`),
	regexp.MustCompile(`(?i)depending on`),
}

var flexibleRe = regexp.MustCompile(`(?i)flexible`)

// weekdayNames maps name fragments to weekdays. Full names come first so
// "monday" resolves before its "mon" prefix.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday}, {"mon", time.Monday},
	{"tuesday", time.Tuesday}, {"tues", time.Tuesday},
	{"wednesday", time.Wednesday}, {"wednes", time.Wednesday},
	{"thursday", time.Thursday}, {"thurs", time.Thursday},
	{"friday", time.Friday}, {"fri", time.Friday},
	{"saturday", time.Saturday}, {"satur", time.Saturday},
	{"sunday", time.Sunday}, {"sun", time.Sunday},
}

// TimeExtractor scans a single email's text for time expressions and
// resolves them to absolute instants through a DateResolver.
type TimeExtractor struct {
	resolver DateResolver
}

// NewTimeExtractor creates a time extractor backed by the given resolver.
func NewTimeExtractor(resolver DateResolver) *TimeExtractor {
	return &TimeExtractor{resolver: resolver}
}

// rawTimeMatch is one regex hit before resolution, tagged with its position
// so matches from different pattern classes can be interleaved.
type rawTimeMatch struct {
	start  int
	source TimeSource
	text   string
	date   string
	clock  string
}

// Extract detects time expressions in text, resolved against now with a
// future-date preference. The earliest match in the text becomes the
// original time; all later matches become proposed alternatives. Expressions
// the resolver cannot handle are silently dropped.
func (e *TimeExtractor) Extract(text string, now time.Time) TimeExtraction {
	var result TimeExtraction

	matches := collectTimeMatches(text)

	var found []TimeCandidate
	for _, m := range matches {
		at, ok := e.resolveMatch(m, now)
		if !ok {
			continue
		}
		found = append(found, TimeCandidate{At: at, Source: m.source, Text: m.text})
	}

	if len(found) > 0 {
		result.OriginalTime = &found[0]
		if len(found) > 1 {
			result.ProposedTimes = found[1:]
			result.AlternativeTimesSuggested = true
		}
	}

	result.Uncertainty = detectUncertainty(text)

	return result
}

// collectTimeMatches runs all pattern classes and orders hits by their start
// position in the text, not by pattern class.
func collectTimeMatches(text string) []rawTimeMatch {
	var matches []rawTimeMatch

	for _, idx := range explicitDateRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, rawTimeMatch{
			start:  idx[0],
			source: SourceExplicitDate,
			text:   text[idx[0]:idx[1]],
			date:   text[idx[2]:idx[3]],
			clock:  text[idx[4]:idx[5]],
		})
	}
	for _, idx := range weekdayTimeRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, rawTimeMatch{
			start:  idx[0],
			source: SourceWeekday,
			text:   text[idx[0]:idx[1]],
			date:   text[idx[2]:idx[3]],
			clock:  text[idx[4]:idx[5]],
		})
	}
	for _, idx := range confirmationRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, rawTimeMatch{
			start:  idx[0],
			source: SourceConfirmation,
			text:   text[idx[0]:idx[1]],
			clock:  text[idx[2]:idx[3]],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	return matches
}

func (e *TimeExtractor) resolveMatch(m rawTimeMatch, now time.Time) (time.Time, bool) {
	switch m.source {
	case SourceExplicitDate:
		return e.resolveExplicit(m, now)
	case SourceWeekday:
		return e.resolveWeekday(m, now)
	case SourceConfirmation:
		return e.resolver.Resolve(m.clock, now, true)
	}
	return time.Time{}, false
}

// resolveExplicit resolves a month/day expression using the current year as
// base, rolling over to the following year when the current-year reading
// falls in the past. This keeps "December 3rd" from resolving backwards when
// now is late in the year.
func (e *TimeExtractor) resolveExplicit(m rawTimeMatch, now time.Time) (time.Time, bool) {
	expr := fmt.Sprintf("%s %s %d", m.date, m.clock, now.Year())
	at, ok := e.resolver.Resolve(expr, now, true)
	if !ok {
		return time.Time{}, false
	}
	if at.Before(now) {
		expr = fmt.Sprintf("%s %s %d", m.date, m.clock, now.Year()+1)
		return e.resolver.Resolve(expr, now, true)
	}
	return at, true
}

// resolveWeekday turns an optional-"next" weekday mention into a concrete
// date. The "next" qualifier always adds a full week; otherwise a
// non-positive day difference rolls to the next occurrence.
func (e *TimeExtractor) resolveWeekday(m rawTimeMatch, now time.Time) (time.Time, bool) {
	dayStr := strings.ToLower(m.date)

	var target time.Weekday
	matched := false
	for _, wd := range weekdayNames {
		if strings.Contains(dayStr, wd.name) {
			target = wd.day
			matched = true
			break
		}
	}
	if !matched {
		return time.Time{}, false
	}

	daysAhead := int(target) - int(now.Weekday())
	if strings.Contains(dayStr, "next") {
		daysAhead += 7
	} else if daysAhead <= 0 {
		daysAhead += 7
	}

	date := now.AddDate(0, 0, daysAhead)
	expr := fmt.Sprintf("%s %s", date.Format("2006-01-02"), m.clock)
	return e.resolver.Resolve(expr, now, true)
}

// detectUncertainty scans for hedging phrases, stopping at the first hit.
func detectUncertainty(text string) bool {
	for _, re := range uncertaintyRes {
		if re.MatchString(text) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, loc := range flexibleRe.FindAllStringIndex(text, -1) {
		if !strings.HasSuffix(lower[:loc[0]], "not ") {
			return true
		}
	}
	return false
}
