package core

import (
	"testing"
)

func TestExtractMeetingLink(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "zoom host",
			text: "Join here: https://us02web.zoom.us/j/1234567890 at 2pm",
			want: "https://us02web.zoom.us/j/1234567890",
		},
		{
			name: "google meet",
			text: "Link is https://meet.google.com/abc-defg-hij thanks",
			want: "https://meet.google.com/abc-defg-hij",
		},
		{
			name: "join path on unknown host",
			text: "Use https://calls.corp.io/join/standup-42 please",
			want: "https://calls.corp.io/join/standup-42",
		},
		{
			name: "calendly",
			text: "Pick a slot: https://calendly.com/jane/30min",
			want: "https://calendly.com/jane/30min",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractMeetingLink(tc.text)
			if got == nil {
				t.Fatalf("got nil, want %q", tc.want)
			}
			if *got != tc.want {
				t.Errorf("got %q, want %q", *got, tc.want)
			}
		})
	}
}

func TestExtractMeetingLinkNone(t *testing.T) {
	t.Parallel()

	if got := ExtractMeetingLink("check https://example.com/docs for details"); got != nil {
		t.Errorf("got %q, want nil", *got)
	}
}
