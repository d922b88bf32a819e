package core

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Thread ordering of a raw blob: reply chains usually quote the newest
// message first, so that is the default.
const (
	ThreadOrderNewestFirst = "newest_first"
	ThreadOrderOldestFirst = "oldest_first"
)

// Splitting strategies for thread blobs.
const (
	SplitStrategyBoundary = "boundary"
	SplitStrategySimple   = "simple"
)

// CombinedReplyType is the merged primary label reported when both
// reschedule and delegation score above the threshold and combining is
// enabled.
const CombinedReplyType = "reschedule_with_delegation"

// ServiceOptions tune the extraction pipeline.
type ServiceOptions struct {
	// ScoreThreshold filters the classifier's label scores; only labels
	// strictly above it are kept in the record.
	ScoreThreshold float64
	// CombineLabels merges reschedule+delegation into a combined primary
	// label when both survive the threshold.
	CombineLabels bool
	// ThreadOrder says how a blob's textual order maps to chronology.
	ThreadOrder string
	// SplitStrategy selects the thread splitting strategy.
	SplitStrategy string
}

// DefaultServiceOptions returns the options used when nothing is configured.
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{
		ScoreThreshold: 0.3,
		ThreadOrder:    ThreadOrderNewestFirst,
		SplitStrategy:  SplitStrategyBoundary,
	}
}

// ExtractionService is the core scheduling-intent extraction engine. It is
// stateless apart from its collaborators: parsing one email never depends on
// another except through the explicit thread reconciliation pass.
type ExtractionService struct {
	classifier Classifier
	times      *TimeExtractor
	logger     *zap.Logger
	opts       ServiceOptions
	now        func() time.Time
}

// NewExtractionService creates the extraction service.
func NewExtractionService(
	classifier Classifier,
	resolver DateResolver,
	logger *zap.Logger,
	opts ServiceOptions,
) *ExtractionService {
	if opts.ThreadOrder == "" {
		opts.ThreadOrder = ThreadOrderNewestFirst
	}
	if opts.SplitStrategy == "" {
		opts.SplitStrategy = SplitStrategyBoundary
	}
	return &ExtractionService{
		classifier: classifier,
		times:      NewTimeExtractor(resolver),
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// WithClock overrides the service's notion of "now". Date resolution and the
// processed-at stamp both derive from it, which makes extraction
// deterministic under test.
func (s *ExtractionService) WithClock(now func() time.Time) *ExtractionService {
	s.now = now
	return s
}

// ParseEmail extracts a full record from a single email's text. Extractor
// failures degrade to absent fields; this never aborts.
func (s *ExtractionService) ParseEmail(ctx context.Context, text string) *ExtractionRecord {
	now := s.now()

	headers := ExtractHeaders(text)
	cls := s.classify(ctx, text)
	timeInfo := s.times.Extract(text, now)

	var proposedTime *time.Time
	if probable := MostProbableTime(timeInfo.OriginalTime, timeInfo.ProposedTimes, text); probable != nil {
		at := probable.At
		proposedTime = &at
	}

	delegate := ExtractDelegate(text, headers)

	return &ExtractionRecord{
		FromEmail:       headers.From,
		ToEmail:         headers.To,
		Subject:         headers.Subject,
		ReplyType:       cls.PrimaryType,
		ReplyTypeScores: cls.Scores,
		ProposedTime:    proposedTime,
		MeetingLink:     ExtractMeetingLink(text),
		DelegateTo:      delegate.Email,
		AdditionalInfo:  timeInfo,
		AdditionalNotes: ComposeNotes(timeInfo, delegate),
		ProcessedAt:     now,
		RawText:         text,
	}
}

// ParseThread splits a raw multi-email blob, extracts a record per email,
// and reconciles confirmations across the thread. Records come back in the
// blob's textual order; reconciliation itself runs over the chronological
// view derived from the configured thread order.
func (s *ExtractionService) ParseThread(ctx context.Context, blob string) Thread {
	var emails []RawEmail
	switch s.opts.SplitStrategy {
	case SplitStrategySimple:
		emails = SplitThreadSimple(blob)
	default:
		emails = SplitThread(blob)
	}
	if len(emails) == 0 {
		s.logger.Warn("No valid emails found in thread blob",
			zap.Int("blob_bytes", len(blob)))
		return nil
	}

	records := make(Thread, len(emails))
	for i, email := range emails {
		rec := s.ParseEmail(ctx, email.Text)
		rec.Position = email.Index
		records[i] = rec
	}

	ReconcileThread(s.chronological(records))

	return records
}

// chronological returns the records ordered oldest first. Reconciliation
// mutates records through the shared pointers, so the caller's ordering is
// untouched.
func (s *ExtractionService) chronological(records Thread) Thread {
	if s.opts.ThreadOrder != ThreadOrderNewestFirst {
		return records
	}
	chrono := make(Thread, len(records))
	for i, rec := range records {
		chrono[len(records)-1-i] = rec
	}
	return chrono
}

// classify invokes the classification capability and reduces its output to a
// primary label plus thresholded score map. An error or empty mapping
// degrades to the unknown label.
func (s *ExtractionService) classify(ctx context.Context, text string) Classification {
	scores, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("Classification failed, falling back to unknown",
			zap.Error(err))
		scores = nil
	}

	cls := Classification{
		PrimaryType: UnknownReplyType,
		Scores:      map[string]float64{},
	}
	if len(scores) == 0 {
		return cls
	}

	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if scores[labels[i]] != scores[labels[j]] {
			return scores[labels[i]] > scores[labels[j]]
		}
		return labels[i] < labels[j]
	})

	cls.PrimaryType = labels[0]
	for _, label := range labels {
		if scores[label] > s.opts.ScoreThreshold {
			cls.Scores[label] = scores[label]
		}
	}

	if s.opts.CombineLabels {
		_, hasReschedule := cls.Scores["reschedule"]
		_, hasDelegation := cls.Scores["delegation"]
		if hasReschedule && hasDelegation {
			cls.PrimaryType = CombinedReplyType
		}
	}

	return cls
}
