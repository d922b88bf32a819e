package core

import (
	"strings"
	"testing"
)

func email(from, to, subject, body string) string {
	return strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		body,
	}, "\n")
}

func TestSplitThreadThreeEmails(t *testing.T) {
	t.Parallel()

	blob := strings.Join([]string{
		email("john@example.com", "meeting@company.com", "Planning", "How about Monday?"),
		email("sarah@example.com", "meeting@company.com", "Re: Planning", "Can we do Tuesday instead?"),
		email("john@example.com", "meeting@company.com", "Re: Planning", "Tuesday works."),
	}, "\n")

	emails := SplitThread(blob)

	if len(emails) != 3 {
		t.Fatalf("chunks: got %d, want 3", len(emails))
	}
	for i, e := range emails {
		if !ValidEmailText(e.Text) {
			t.Errorf("chunk %d: not header-valid:\n%s", i, e.Text)
		}
		if e.Index != i {
			t.Errorf("chunk %d: Index got %d, want %d", i, e.Index, i)
		}
	}
	if !strings.Contains(emails[0].Text, "How about Monday?") {
		t.Errorf("chunk 0: wrong order, got:\n%s", emails[0].Text)
	}
	if !strings.Contains(emails[2].Text, "Tuesday works.") {
		t.Errorf("chunk 2: wrong order, got:\n%s", emails[2].Text)
	}
}

func TestSplitThreadDropsInvalidChunk(t *testing.T) {
	t.Parallel()

	blob := strings.Join([]string{
		email("a@x.com", "b@y.com", "ok", "body"),
		"From: broken@x.com",
		"no other headers here",
		email("c@x.com", "b@y.com", "also ok", "body"),
	}, "\n")

	emails := SplitThread(blob)

	if len(emails) != 2 {
		t.Fatalf("chunks: got %d, want 2", len(emails))
	}
}

func TestSplitThreadSingleEmailFallback(t *testing.T) {
	t.Parallel()

	// Display-name From lines don't match the boundary pattern, but the
	// blob still validates as one email.
	blob := "From: John Smith\nTo: b@y.com\nSubject: hello\nbody"

	emails := SplitThread(blob)

	if len(emails) != 1 {
		t.Fatalf("chunks: got %d, want 1", len(emails))
	}
	if emails[0].Text != blob {
		t.Errorf("fallback chunk: got %q, want whole blob", emails[0].Text)
	}
}

func TestSplitThreadNothingValid(t *testing.T) {
	t.Parallel()

	if got := SplitThread("just some prose without headers"); len(got) != 0 {
		t.Errorf("chunks: got %d, want 0", len(got))
	}
}

func TestSplitThreadNormalizesTypographicQuotes(t *testing.T) {
	t.Parallel()

	blob := email("a@x.com", "b@y.com", "quotes", "I’d like to meet")
	emails := SplitThread(blob)

	if len(emails) != 1 {
		t.Fatalf("chunks: got %d, want 1", len(emails))
	}
	if !strings.Contains(emails[0].Text, "I'd like") {
		t.Errorf("quotes not normalized: %q", emails[0].Text)
	}
}

func TestSplitThreadSimple(t *testing.T) {
	t.Parallel()

	blob := "From: a@x.com\nbody one\nFrom: b@x.com\nbody two"

	emails := SplitThreadSimple(blob)

	if len(emails) != 2 {
		t.Fatalf("chunks: got %d, want 2", len(emails))
	}
	if !strings.HasPrefix(emails[0].Text, "From: a@x.com") {
		t.Errorf("chunk 0: got %q", emails[0].Text)
	}
	if !strings.HasPrefix(emails[1].Text, "From: b@x.com") {
		t.Errorf("chunk 1: got %q", emails[1].Text)
	}
}

func TestSplitThreadSimpleDiscardsEmpty(t *testing.T) {
	t.Parallel()

	if got := SplitThreadSimple("   \n  "); len(got) != 0 {
		t.Errorf("chunks: got %d, want 0", len(got))
	}
}
