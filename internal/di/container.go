package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/config"
	"github.com/mikey/mail-sched-extractor/internal/core"
	"github.com/mikey/mail-sched-extractor/internal/dateparse"
	"github.com/mikey/mail-sched-extractor/internal/factory"
	"github.com/mikey/mail-sched-extractor/internal/logging"
	"github.com/mikey/mail-sched-extractor/internal/ports"
	"github.com/mikey/mail-sched-extractor/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIntakeFactory); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register date resolver
	if err := container.Provide(func() core.DateResolver {
		return dateparse.New()
	}); err != nil {
		return nil, err
	}

	// Register pipeline options
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.ServiceOptions {
		parserCfg := cfg.GetParser()
		logger.Info("Parser configuration",
			zap.Float64("score_threshold", parserCfg.ScoreThreshold),
			zap.String("thread_order", parserCfg.ThreadOrder),
			zap.String("split_strategy", parserCfg.SplitStrategy))
		return core.ServiceOptions{
			ScoreThreshold: parserCfg.ScoreThreshold,
			CombineLabels:  parserCfg.CombineRescheduleDelegation,
			ThreadOrder:    parserCfg.ThreadOrder,
			SplitStrategy:  parserCfg.SplitStrategy,
		}
	}); err != nil {
		return nil, err
	}

	// Register extraction service
	if err := container.Provide(core.NewExtractionService); err != nil {
		return nil, err
	}

	// Register record store
	if err := container.Provide(func(f *factory.StoreFactory) (ports.RecordStore, error) {
		return f.CreateRecordStore()
	}); err != nil {
		return nil, err
	}

	// Register email intake
	if err := container.Provide(func(f *factory.IntakeFactory) (ports.EmailIntake, error) {
		return f.CreateEmailIntake()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
