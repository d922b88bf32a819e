package ports

import (
	"context"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// RecordStore defines the interface for persisting extraction records
type RecordStore interface {
	// SaveThread stores a thread's records and returns the thread id they
	// were filed under
	SaveThread(ctx context.Context, records core.Thread) (string, error)

	// GetThread retrieves all records filed under a thread id, oldest first
	GetThread(ctx context.Context, threadID string) (core.Thread, error)

	// Recent retrieves the most recently processed records
	Recent(ctx context.Context, limit int) (core.Thread, error)

	// Cleanup removes records older than the retention period
	Cleanup(ctx context.Context) error
}
