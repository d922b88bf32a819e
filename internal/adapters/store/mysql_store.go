package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// MySQLStore is a MySQL implementation of the RecordStore interface
type MySQLStore struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLStore creates a new MySQL record store
func NewMySQLStore(dsn string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sched_records (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			thread_id VARCHAR(64) NOT NULL,
			subject_norm VARCHAR(512),
			from_email VARCHAR(320),
			to_email VARCHAR(320),
			subject TEXT,
			reply_type VARCHAR(64),
			reply_type_scores TEXT,
			proposed_time VARCHAR(40),
			meeting_link TEXT,
			delegate_to VARCHAR(320),
			additional_info TEXT,
			additional_notes TEXT,
			processed_at VARCHAR(40),
			INDEX idx_records_thread_id (thread_id),
			INDEX idx_records_subject_norm (subject_norm),
			INDEX idx_records_from_email (from_email),
			INDEX idx_records_reply_type (reply_type),
			INDEX idx_records_processed_at (processed_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s := &MySQLStore{
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
func (s *MySQLStore) SaveThread(ctx context.Context, records core.Thread) (string, error) {
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
func (s *MySQLStore) lookupThreadID(ctx context.Context, tx *sql.Tx, records core.Thread) (string, error) {
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
func (s *MySQLStore) GetThread(ctx context.Context, threadID string) (core.Thread, error) {
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
func (s *MySQLStore) Recent(ctx context.Context, limit int) (core.Thread, error) {
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
func (s *MySQLStore) Cleanup(ctx context.Context) error {
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
func (s *MySQLStore) startCleanupTask() {
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
func (s *MySQLStore) Stop() {
	close(s.stopCh)
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
