package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
	"github.com/mikey/mail-sched-extractor/internal/di"
	"github.com/mikey/mail-sched-extractor/internal/ports"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run reads an email or thread blob from the configured input, extracts its
// scheduling intent and prints the records
func run(
	logger *zap.Logger,
	emailIntake ports.EmailIntake,
	classifier core.Classifier,
	flags *di.CLIFlags,
) error {
	defer logger.Sync()

	var input io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file",
				zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		input = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		input = os.Stdin
		logger.Info("Reading email from stdin")
	}

	text, err := io.ReadAll(input)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	if _, err := emailIntake.ProcessText(context.Background(), string(text)); err != nil {
		logger.Fatal("Failed to process input", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}

	return nil
}
