package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// recordColumns is the column list shared by the SQL store implementations,
// in insert/scan order.
const recordColumns = `thread_id, subject_norm, from_email, to_email, subject,
	reply_type, reply_type_scores, proposed_time, meeting_link, delegate_to,
	additional_info, additional_notes, processed_at`

// recordArgs flattens a record into SQL arguments matching recordColumns.
// Score maps and the time extraction detail are stored as JSON.
func recordArgs(threadID string, rec *core.ExtractionRecord) ([]interface{}, error) {
	scores, err := json.Marshal(rec.ReplyTypeScores)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reply type scores: %w", err)
	}
	info, err := json.Marshal(rec.AdditionalInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal additional info: %w", err)
	}

	var subjectNorm interface{}
	if rec.Subject != nil {
		subjectNorm = NormalizeSubject(*rec.Subject)
	}
	var proposed interface{}
	if rec.ProposedTime != nil {
		proposed = rec.ProposedTime.Format(time.RFC3339)
	}

	return []interface{}{
		threadID,
		subjectNorm,
		rec.FromEmail,
		rec.ToEmail,
		rec.Subject,
		rec.ReplyType,
		string(scores),
		proposed,
		rec.MeetingLink,
		rec.DelegateTo,
		string(info),
		rec.AdditionalNotes,
		rec.ProcessedAt.Format(time.RFC3339),
	}, nil
}

// scanRecord reads one row produced by a SELECT over recordColumns back into
// a record.
func scanRecord(rows *sql.Rows) (*core.ExtractionRecord, error) {
	var (
		rec         core.ExtractionRecord
		threadID    string
		subjectNorm sql.NullString
		scores      string
		proposed    sql.NullString
		info        string
		processedAt string
	)

	if err := rows.Scan(
		&threadID,
		&subjectNorm,
		&rec.FromEmail,
		&rec.ToEmail,
		&rec.Subject,
		&rec.ReplyType,
		&scores,
		&proposed,
		&rec.MeetingLink,
		&rec.DelegateTo,
		&info,
		&rec.AdditionalNotes,
		&processedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan record row: %w", err)
	}

	if err := json.Unmarshal([]byte(scores), &rec.ReplyTypeScores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reply type scores: %w", err)
	}
	if err := json.Unmarshal([]byte(info), &rec.AdditionalInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal additional info: %w", err)
	}

	if proposed.Valid {
		t, err := time.Parse(time.RFC3339, proposed.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proposed_time: %w", err)
		}
		rec.ProposedTime = &t
	}

	t, err := time.Parse(time.RFC3339, processedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse processed_at: %w", err)
	}
	rec.ProcessedAt = t

	return &rec, nil
}
