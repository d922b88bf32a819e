package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/adapters/intake"
	"github.com/mikey/mail-sched-extractor/internal/config"
	"github.com/mikey/mail-sched-extractor/internal/core"
	"github.com/mikey/mail-sched-extractor/internal/ports"
)

// IntakeFactory creates email intakes based on configuration
type IntakeFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.ExtractionService
	store   ports.RecordStore
}

// NewIntakeFactory creates a new intake factory
func NewIntakeFactory(cfg *config.Config, logger *zap.Logger, service *core.ExtractionService, store ports.RecordStore) *IntakeFactory {
	return &IntakeFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
		store:   store,
	}
}

// CreateEmailIntake creates an email intake based on the configuration
func (f *IntakeFactory) CreateEmailIntake() (ports.EmailIntake, error) {
	serverCfg := f.cfg.GetServer()

	switch serverCfg.IntakeType {
	case "smtp":
		return intake.NewSMTPIntake(
			f.service,
			f.store,
			f.logger,
			serverCfg.ListenAddress,
			serverCfg.Domain,
			serverCfg.RelayEnabled,
			serverCfg.RelayAddress,
		), nil
	case "cli":
		return intake.NewCLIIntake(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported intake type: %s", serverCfg.IntakeType)
	}
}
