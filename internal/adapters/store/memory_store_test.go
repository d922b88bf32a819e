package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(zap.NewNop(), time.Hour, time.Hour)
	t.Cleanup(s.Stop)
	return s
}

func record(subject string, processedAt time.Time) *core.ExtractionRecord {
	rec := &core.ExtractionRecord{
		ReplyType:   "accept",
		ProcessedAt: processedAt,
	}
	if subject != "" {
		rec.Subject = &subject
	}
	return rec
}

func TestSaveThreadGroupsBySubject(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first, err := s.SaveThread(ctx, core.Thread{record("Project Sync", now)})
	if err != nil {
		t.Fatalf("SaveThread: %v", err)
	}

	second, err := s.SaveThread(ctx, core.Thread{record("Re: Project Sync", now)})
	if err != nil {
		t.Fatalf("SaveThread: %v", err)
	}
	if second != first {
		t.Errorf("thread id for reply: got %q, want %q", second, first)
	}

	third, err := s.SaveThread(ctx, core.Thread{record("Budget Review", now)})
	if err != nil {
		t.Fatalf("SaveThread: %v", err)
	}
	if third == first {
		t.Error("unrelated subject filed under the same thread")
	}

	thread, err := s.GetThread(ctx, first)
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	if len(thread) != 2 {
		t.Errorf("thread records: got %d, want 2", len(thread))
	}
}

func TestSaveThreadNoSubjectMintsNewThread(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first, _ := s.SaveThread(ctx, core.Thread{record("", now)})
	second, _ := s.SaveThread(ctx, core.Thread{record("", now)})

	if first == second {
		t.Error("subjectless threads must not share an id")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, subject := range []string{"one", "two", "three"} {
		if _, err := s.SaveThread(ctx, core.Thread{record(subject, now)}); err != nil {
			t.Fatalf("SaveThread: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("records: got %d, want 2", len(recent))
	}
	if *recent[0].Subject != "three" || *recent[1].Subject != "two" {
		t.Errorf("order: got [%s %s], want [three two]",
			*recent[0].Subject, *recent[1].Subject)
	}
}

func TestCleanupDropsExpiredRecords(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-2 * time.Hour)
	fresh := time.Now()

	s.SaveThread(ctx, core.Thread{record("old thread", old)})
	s.SaveThread(ctx, core.Thread{record("fresh thread", fresh)})

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	recent, _ := s.Recent(ctx, 10)
	if len(recent) != 1 {
		t.Fatalf("records after cleanup: got %d, want 1", len(recent))
	}
	if *recent[0].Subject != "fresh thread" {
		t.Errorf("kept record: got %q, want fresh thread", *recent[0].Subject)
	}
}

func TestNormalizeSubject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Project Sync", "project sync"},
		{"Re: Project Sync", "project sync"},
		{"RE: re: Fwd: Project   Sync", "project sync"},
		{"FW: budget", "budget"},
		{"  ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeSubject(tc.in); got != tc.want {
			t.Errorf("NormalizeSubject(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewThreadID(t *testing.T) {
	t.Parallel()

	id := NewThreadID()
	if !strings.HasPrefix(id, "thread_") {
		t.Errorf("prefix: got %q, want thread_", id)
	}
	if len(id) != len("thread_")+24 {
		t.Errorf("length: got %d, want %d", len(id), len("thread_")+24)
	}
	if id == NewThreadID() {
		t.Error("ids must be unique")
	}
}
