package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// storedRecord pairs a record with the thread it was filed under and its
// store-wide insertion order.
type storedRecord struct {
	threadID string
	seq      int
	record   *core.ExtractionRecord
}

// MemoryStore is an in-memory implementation of the RecordStore interface
type MemoryStore struct {
	records     []storedRecord
	threads     map[string]string // normalized subject -> thread id
	nextSeq     int
	mu          sync.RWMutex
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryStore creates a new in-memory record store
func NewMemoryStore(logger *zap.Logger, retention, cleanupFreq time.Duration) *MemoryStore {
	s := &MemoryStore{
		threads:     make(map[string]string),
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go s.startCleanupTask()

	return s
}

// SaveThread stores a thread's records and returns the thread id they were
// filed under. Threads are keyed by normalized subject, so a later reply with
// a "Re:" subject joins its original thread.
func (s *MemoryStore) SaveThread(_ context.Context, records core.Thread) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	threadID := s.threadIDFor(records)
	for _, rec := range records {
		s.records = append(s.records, storedRecord{
			threadID: threadID,
			seq:      s.nextSeq,
			record:   rec,
		})
		s.nextSeq++
	}

	s.logger.Debug("Saved thread records",
		zap.String("thread_id", threadID),
		zap.Int("record_count", len(records)))

	return threadID, nil
}

// threadIDFor finds the existing thread for the records' subject or mints a
// new one. Caller holds the lock.
func (s *MemoryStore) threadIDFor(records core.Thread) string {
	for _, rec := range records {
		if rec.Subject == nil {
			continue
		}
		key := NormalizeSubject(*rec.Subject)
		if key == "" {
			continue
		}
		if id, ok := s.threads[key]; ok {
			return id
		}
		id := NewThreadID()
		s.threads[key] = id
		return id
	}
	return NewThreadID()
}

// GetThread retrieves all records filed under a thread id, oldest first
func (s *MemoryStore) GetThread(_ context.Context, threadID string) (core.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var thread core.Thread
	for _, sr := range s.records {
		if sr.threadID == threadID {
			thread = append(thread, sr.record)
		}
	}
	return thread, nil
}

// Recent retrieves the most recently stored records, newest first
func (s *MemoryStore) Recent(_ context.Context, limit int) (core.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	thread := make(core.Thread, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(thread) < limit; i-- {
		thread = append(thread, s.records[i].record)
	}
	return thread, nil
}

// Cleanup removes records older than the retention period
func (s *MemoryStore) Cleanup(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention)
	kept := s.records[:0]
	expired := 0
	for _, sr := range s.records {
		if sr.record.ProcessedAt.Before(cutoff) {
			expired++
			continue
		}
		kept = append(kept, sr)
	}
	s.records = kept

	s.logger.Debug("Cleaned up expired records", zap.Int("expired_count", expired))
	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *MemoryStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up record store", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}
