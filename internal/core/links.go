package core

import (
	"regexp"
)

// Known conferencing URL shapes: service hostnames first, then generic
// join/meeting/conf path segments.
var meetingLinkRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[^\s<>"]*?(?:zoom|meet|teams|webex|gotomeeting|calendly|webinar)\.[^\s<>"]+`),
	regexp.MustCompile(`(?i)https?://[^\s<>"]+?/[^\s<>"]*?(?:join|meeting|conf)[^\s<>"]*`),
}

// ExtractMeetingLink returns the first conferencing URL found in the text,
// verbatim, or nil when none is present.
func ExtractMeetingLink(text string) *string {
	for _, re := range meetingLinkRes {
		if m := re.FindString(text); m != "" {
			return &m
		}
	}
	return nil
}
