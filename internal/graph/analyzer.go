package graph

import (
	"context"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/internal/metrics"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

// Analyzer runs one compiled analysis graph per call.
type Analyzer struct {
	runnable compose.Runnable[string, *models.RunRecord]
	log      *zap.Logger
	timeout  time.Duration
}

// NewAnalyzer compiles the graph once. A zero timeout leaves runs bounded only
// by the caller's context.
func NewAnalyzer(ctx context.Context, runners Runners, log *zap.Logger, timeout time.Duration) (*Analyzer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := NewAnalysisOrchestrator(ctx, runners, log)
	if err != nil {
		return nil, err
	}
	return &Analyzer{runnable: r, log: log, timeout: timeout}, nil
}

// Analyze runs the whole graph for symbol. On any error no record is returned.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*models.RunRecord, error) {
	s, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	log := a.log.With(zap.String("run_id", uuid.NewString()), zap.String("symbol", s))
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	log.Info("analysis started")
	rec, err := a.runnable.Invoke(ctx, s, compose.WithCallbacks(NewLoggerCallback(log)))
	metrics.RecordRun(err)
	if err != nil {
		log.Error("analysis failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	log.Info("analysis finished", zap.Duration("duration", time.Since(start)))
	return rec, nil
}
