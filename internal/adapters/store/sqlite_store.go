package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// SQLiteStore is a SQLite implementation of the RecordStore interface
type SQLiteStore struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteStore creates a new SQLite record store
func NewSQLiteStore(dbPath string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sched_records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			thread_id TEXT NOT NULL,
			subject_norm TEXT,
			from_email TEXT,
			to_email TEXT,
			subject TEXT,
			reply_type TEXT,
			reply_type_scores TEXT,
			proposed_time TIMESTAMP,
			meeting_link TEXT,
			delegate_to TEXT,
			additional_info TEXT,
			additional_notes TEXT,
			processed_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_records_thread_id ON sched_records(thread_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_subject_norm ON sched_records(subject_norm)`,
		`CREATE INDEX IF NOT EXISTS idx_records_from_email ON sched_records(from_email)`,
		`CREATE INDEX IF NOT EXISTS idx_records_reply_type ON sched_records(reply_type)`,
		`CREATE INDEX IF NOT EXISTS idx_records_processed_at ON sched_records(processed_at)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	}

	s := &SQLiteStore{
		db:          db,
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go s.startCleanupTask()

	return s, nil
}

// SaveThread stores a thread's records and returns the thread id they were
// filed under. A record whose normalized subject already exists joins that
// thread instead of starting a new one.
func (s *SQLiteStore) SaveThread(ctx context.Context, records core.Thread) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	threadID, err := s.lookupThreadID(ctx, tx, records)
	if err != nil {
		return "", err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 13), ", ")
	insert := fmt.Sprintf(`INSERT INTO sched_records (%s) VALUES (%s)`,
		recordColumns, placeholders)

	for _, rec := range records {
		args, err := recordArgs(threadID, rec)
		if err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return "", fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("Saved thread records",
		zap.String("thread_id", threadID),
		zap.Int("record_count", len(records)))

	return threadID, nil
}

// lookupThreadID finds the existing thread for the records' subject or mints
// a new id.
func (s *SQLiteStore) lookupThreadID(ctx context.Context, tx *sql.Tx, records core.Thread) (string, error) {
	for _, rec := range records {
		if rec.Subject == nil {
			continue
		}
		key := NormalizeSubject(*rec.Subject)
		if key == "" {
			continue
		}

		var id string
		err := tx.QueryRowContext(ctx, `
			SELECT thread_id FROM sched_records
			WHERE subject_norm = ?
			ORDER BY seq LIMIT 1
		`, key).Scan(&id)
		if err == sql.ErrNoRows {
			return NewThreadID(), nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to look up thread id: %w", err)
		}
		return id, nil
	}
	return NewThreadID(), nil
}

// GetThread retrieves all records filed under a thread id, oldest first
func (s *SQLiteStore) GetThread(ctx context.Context, threadID string) (core.Thread, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sched_records
		WHERE thread_id = ?
		ORDER BY seq
	`, recordColumns)

	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Recent retrieves the most recently stored records, newest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) (core.Thread, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sched_records
		ORDER BY seq DESC LIMIT ?
	`, recordColumns)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Cleanup removes records older than the retention period
func (s *SQLiteStore) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention).Format(time.RFC3339)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM sched_records
		WHERE processed_at < ?
	`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		s.logger.Debug("Cleaned up expired records", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// startCleanupTask starts a background task to clean up expired records
func (s *SQLiteStore) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database connection
func (s *SQLiteStore) Stop() {
	close(s.stopCh)
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

// collectRecords drains a record result set
func collectRecords(rows *sql.Rows) (core.Thread, error) {
	var thread core.Thread
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		thread = append(thread, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}
	return thread, nil
}
