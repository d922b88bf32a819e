// Package dateparse is the built-in date resolution capability: it turns the
// partial date/time phrases the extraction engine assembles into absolute
// instants. Anything it cannot read resolves to absence, never an error.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe    = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(AM|PM)\b`)
	isoDateRe  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDayRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})\b`)
	yearRe     = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	ordinalRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)

	// "3pm" style with no space before the meridiem.
	tightClockRe = regexp.MustCompile(`(?i)(\d)(AM|PM)\b`)
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Resolver resolves expressions of the shapes the extraction engine
// produces: "January 5th 3:30 PM 2026", "2026-01-05 2 PM", and bare clock
// times like "10:30 AM".
type Resolver struct{}

// New creates a resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve parses expr against the reference instant now. Times inherit now's
// location. A yearless month/day reading that lands in the past rolls to the
// following year when preferFuture is set; a bare clock time in the past
// rolls to the next day.
func (r *Resolver) Resolve(expr string, now time.Time, preferFuture bool) (time.Time, bool) {
	s := normalize(expr)

	hour, minute, ok := parseClock(s)
	if !ok {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return mkDate(year, time.Month(month), day, hour, minute, now), true
	}

	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		month := months[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 {
			return time.Time{}, false
		}

		if y := yearRe.FindStringSubmatch(s); y != nil {
			year, _ := strconv.Atoi(y[1])
			return mkDate(year, month, day, hour, minute, now), true
		}

		t := mkDate(now.Year(), month, day, hour, minute, now)
		if preferFuture && t.Before(now) {
			t = t.AddDate(1, 0, 0)
		}
		return t, true
	}

	// Bare clock time: today at that time, rolled forward when past.
	t := mkDate(now.Year(), now.Month(), now.Day(), hour, minute, now)
	if preferFuture && !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

func normalize(expr string) string {
	s := strings.TrimSpace(expr)
	s = strings.Join(strings.Fields(s), " ")
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = tightClockRe.ReplaceAllString(s, "$1 $2")
	return s
}

func parseClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if hour < 1 || hour > 12 {
		return 0, 0, false
	}
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
		if minute > 59 {
			return 0, 0, false
		}
	}

	if strings.EqualFold(m[3], "PM") {
		if hour != 12 {
			hour += 12
		}
	} else if hour == 12 {
		hour = 0
	}

	return hour, minute, true
}

func mkDate(year int, month time.Month, day, hour, minute int, now time.Time) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location())
}
