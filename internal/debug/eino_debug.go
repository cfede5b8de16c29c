package debug

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/devops"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/config"
)

// EinoDebugger starts the eino visual debug plugin. It must be initialized
// before any graph is compiled for the graph to show up.
type EinoDebugger struct {
	config *config.Config
	log    *zap.Logger
}

func NewEinoDebugger(cfg *config.Config, log *zap.Logger) *EinoDebugger {
	if log == nil {
		log = zap.NewNop()
	}
	return &EinoDebugger{
		config: cfg,
		log:    log,
	}
}

func (d *EinoDebugger) Initialize(ctx context.Context) error {
	if !d.IsEnabled() {
		return nil
	}

	d.log.Info("initializing Eino visual debug plugin")
	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize Eino debug plugin: %w", err)
	}
	d.log.Info("Eino debug plugin ready")
	return nil
}

func (d *EinoDebugger) IsEnabled() bool {
	return d.config != nil && d.config.EinoDebugEnabled
}
