package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/config"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/agents"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/dataflows"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/debug"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/graph"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/tools"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

// Engine holds everything one process needs to analyze tickers. It is built
// once and shared by the web server and the CLI.
type Engine struct {
	Config  *config.Config
	BuiltAt time.Time
	Version uint64

	analyzer *graph.Analyzer
}

var engineSeq atomic.Uint64

type Option func(*options)

type options struct {
	chatModel model.ToolCallingChatModel
}

// WithChatModel replaces the provider model built from the config.
func WithChatModel(m model.ToolCallingChatModel) Option {
	return func(o *options) {
		o.chatModel = m
	}
}

func BuildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := debug.NewEinoDebugger(cfg, log).Initialize(ctx); err != nil {
		return nil, err
	}

	chatModel := o.chatModel
	if chatModel == nil {
		var err error
		if chatModel, err = agents.NewChatModel(ctx, cfg); err != nil {
			return nil, err
		}
	}

	fmp := dataflows.NewFMPClient(cfg.FMPBaseURL, cfg.FMPAPIKey, cfg.HTTPTimeout, log)
	news := dataflows.NewNewsClient(cfg.NewsBaseURL, cfg.NewsAPIKey, cfg.HTTPTimeout, log)

	team, err := agents.NewTeam(ctx, chatModel, agents.Tools{
		Finance:     tools.NewFinanceTool(fmp),
		Fundamental: tools.NewFundamentalTool(fmp),
		News:        tools.NewNewsTool(news),
	}, cfg.LLMMaxStep)
	if err != nil {
		return nil, err
	}

	analyzer, err := graph.NewAnalyzer(ctx, graph.Runners{
		Financial:    team.Financial,
		Fundamentals: team.Fundamentals,
		News:         team.News,
		Conclusion:   team.Conclusion,
	}, log, cfg.RunTimeout)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Config:   cfg,
		BuiltAt:  time.Now(),
		Version:  engineSeq.Add(1),
		analyzer: analyzer,
	}
	log.Info("engine built",
		zap.Uint64("version", e.Version),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("llm_model", cfg.LLMModel))
	return e, nil
}

// Analyze runs one full analysis for symbol.
func (e *Engine) Analyze(ctx context.Context, symbol string) (*models.RunRecord, error) {
	return e.analyzer.Analyze(ctx, symbol)
}
