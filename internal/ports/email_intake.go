package ports

import (
	"context"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// EmailIntake defines the interface for receiving email text to process
type EmailIntake interface {
	// ProcessText runs the extraction pipeline over a raw email or thread
	// blob and returns the resulting records
	ProcessText(ctx context.Context, text string) (core.Thread, error)

	// Start starts the intake service
	Start() error

	// Stop stops the intake service
	Stop() error
}
