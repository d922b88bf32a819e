package core

import (
	"context"
	"time"
)

// Classifier defines the interface for the external classification
// capability. It maps raw email text to a label/confidence mapping. The
// implementation may be a trained model, an LLM, or a rules engine; the core
// treats it as a stateless pure function.
type Classifier interface {
	// Classify returns a mapping from intent label to confidence in [0,1].
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// DateResolver defines the interface for resolving partial natural-language
// date/time expressions against a reference instant. Failure is reported by
// the boolean, never by panicking or erroring.
type DateResolver interface {
	// Resolve parses expr relative to now. With preferFuture set, an
	// expression that would land in the past is rolled forward to its
	// nearest future occurrence.
	Resolve(expr string, now time.Time, preferFuture bool) (time.Time, bool)
}
