package intake

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
)

// CLIIntake runs the extraction pipeline over text supplied on the command
// line and prints the resulting records as JSON
type CLIIntake struct {
	service *core.ExtractionService
	logger  *zap.Logger
	verbose bool
}

// NewCLIIntake creates a new CLI intake
func NewCLIIntake(service *core.ExtractionService, logger *zap.Logger, verbose bool) (*CLIIntake, error) {
	return &CLIIntake{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessText runs the extraction pipeline and prints the records
func (f *CLIIntake) ProcessText(ctx context.Context, text string) (core.Thread, error) {
	f.logger.Debug("Processing input", zap.Int("bytes", len(text)))

	if f.verbose {
		preview := text
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("=== Input preview ===\n%s\n\n", preview)
	}

	records := f.service.ParseThread(ctx, text)
	if len(records) == 0 {
		return nil, fmt.Errorf("no processable emails in input")
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	fmt.Println(string(out))

	return records, nil
}

// Start is a no-op for the CLI intake
func (f *CLIIntake) Start() error {
	return nil
}

// Stop is a no-op for the CLI intake
func (f *CLIIntake) Stop() error {
	return nil
}
