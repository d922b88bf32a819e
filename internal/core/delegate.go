package core

import (
	"regexp"
	"strings"
)

// addressRe matches email-address-shaped tokens anywhere in the text.
var addressRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// delegationCueRes are the request-to-take-over phrasings. Each distinct cue
// that matches adds 0.25 to the confidence accumulator, capped at 1.0.
var delegationCueRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:can|could|would)\s+(?:you|someone)\s+(?:take|handle|cover)`),
	regexp.MustCompile(`(?i)(?:need|looking for)\s+(?:someone|anybody|anyone)\s+to\s+(?:take|handle|cover)`),
	regexp.MustCompile(`(?i)(?:please|kindly)\s+(?:take|handle|cover)\s+(?:this|the|my)`),
	regexp.MustCompile(`(?i)(?:delegate|transfer|assign)\s+(?:to|this|the)`),
	regexp.MustCompile(`(?i)step\s+in[^.]*?[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}`),
	regexp.MustCompile(`(?i)[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}\s*(?:can|will|should|to)\s+(?:handle|take over|step in)`),
}

// associateRes capture the "my associate Name (name@host)" shape, with the
// parenthesised form first. When one of these matches it takes precedence
// over the generic cue accumulator and carries the associate's name.
var associateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my|the)\s+associate,?\s*(\w+)\s*\(([\w.%+-]+@[\w.-]+\.[A-Za-z]{2,})\)`),
	regexp.MustCompile(`(?i)(?:my|the)\s+associate,?\s*(\w+)[^(]*?([\w.%+-]+@[\w.-]+\.[A-Za-z]{2,})`),
}

// ExtractDelegate detects delegation phrasing in text and associates it with
// a plausible delegate address. The reported address is never the email's own
// sender or recipient.
func ExtractDelegate(text string, headers Headers) DelegateInfo {
	var info DelegateInfo

	for _, re := range delegationCueRes {
		if re.MatchString(text) {
			info.Confidence += 0.25
		}
	}
	if info.Confidence > 1.0 {
		info.Confidence = 1.0
	}

	excluded := headerAddresses(headers)

	for _, re := range associateRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name, email := m[1], m[2]
		if excluded[strings.ToLower(email)] {
			continue
		}
		// The associate shape identifies the delegate by name; no cue
		// confidence is attached to it.
		return DelegateInfo{Name: &name, Email: &email}
	}

	if info.Confidence == 0 {
		return DelegateInfo{}
	}

	for _, addr := range addressRe.FindAllString(text, -1) {
		if excluded[strings.ToLower(addr)] {
			continue
		}
		email := addr
		info.Email = &email
		return info
	}

	// Cues without a usable address report no delegate.
	return DelegateInfo{}
}

// headerAddresses builds the exclusion set from the From and To headers,
// covering both the raw header value and any address token inside it.
func headerAddresses(headers Headers) map[string]bool {
	excluded := make(map[string]bool)
	for _, h := range []*string{headers.From, headers.To} {
		if h == nil {
			continue
		}
		excluded[strings.ToLower(strings.TrimSpace(*h))] = true
		for _, addr := range addressRe.FindAllString(*h, -1) {
			excluded[strings.ToLower(addr)] = true
		}
	}
	return excluded
}
