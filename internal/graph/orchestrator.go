package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/message"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/metrics"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

// Runner is one summarization step. *agents.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, input string) (*schema.Message, error)
}

// Runners are the four steps wired into the analysis graph.
type Runners struct {
	Financial    Runner
	Fundamentals Runner
	News         Runner
	Conclusion   Runner
}

func (r Runners) validate() error {
	if r.Financial == nil || r.Fundamentals == nil || r.News == nil || r.Conclusion == nil {
		return fmt.Errorf("all four runners are required")
	}
	return nil
}

func genState(ctx context.Context) *models.RunRecord {
	return &models.RunRecord{}
}

func loadSymbol(ctx context.Context, symbol string) (string, error) {
	s, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return "", err
	}
	err = compose.ProcessState[*models.RunRecord](ctx, func(_ context.Context, state *models.RunRecord) error {
		state.Symbol = s
		return nil
	})
	return s, err
}

// summaryNode runs one data agent on the symbol and stores the extracted text
// in field. The text is also the node output, keyed by the field name, so the
// three outputs merge into a single map at the conclusion join.
func summaryNode(node string, field models.Field, runner Runner, log *zap.Logger) func(context.Context, string) (string, error) {
	return func(ctx context.Context, symbol string) (string, error) {
		start := time.Now()
		defer metrics.ObserveNode(node, start)

		msg, err := runner.Run(ctx, symbol)
		if err != nil {
			return "", fmt.Errorf("%s node: %w", node, err)
		}
		text := message.ExtractText(message.Content(msg))

		err = compose.ProcessState[*models.RunRecord](ctx, func(_ context.Context, state *models.RunRecord) error {
			return state.Set(field, text)
		})
		if err != nil {
			return "", err
		}
		log.Debug("summary ready",
			zap.String("node", node),
			zap.String("symbol", symbol),
			zap.Int("chars", len(text)),
			zap.Duration("duration", time.Since(start)))
		return text, nil
	}
}

// conclusionNode only runs once all three summaries exist. Its map input is
// the merged upstream outputs; the summaries are read from the record so that
// an empty field still shows as the placeholder.
func conclusionNode(runner Runner, log *zap.Logger) func(context.Context, map[string]any) (*models.RunRecord, error) {
	return func(ctx context.Context, _ map[string]any) (*models.RunRecord, error) {
		start := time.Now()
		defer metrics.ObserveNode(consts.Conclusion, start)

		var input, symbol string
		err := compose.ProcessState[*models.RunRecord](ctx, func(_ context.Context, state *models.RunRecord) error {
			input = state.ConclusionInput()
			symbol = state.Symbol
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s node: %w", consts.Conclusion, err)
		}

		msg, err := runner.Run(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%s node: %w", consts.Conclusion, err)
		}
		text := message.ExtractText(message.Content(msg))

		var out *models.RunRecord
		err = compose.ProcessState[*models.RunRecord](ctx, func(_ context.Context, state *models.RunRecord) error {
			if err := state.Set(models.FieldConclusion, text); err != nil {
				return err
			}
			out = state.Clone()
			return nil
		})
		if err != nil {
			return nil, err
		}
		log.Debug("conclusion ready",
			zap.String("symbol", symbol),
			zap.Duration("duration", time.Since(start)))
		return out, nil
	}
}

// NewAnalysisOrchestrator compiles the load -> {finance, fundamentals, news} ->
// conclusion graph. Nodes trigger only when all predecessors are done.
func NewAnalysisOrchestrator(ctx context.Context, runners Runners, log *zap.Logger) (compose.Runnable[string, *models.RunRecord], error) {
	if err := runners.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	g := compose.NewGraph[string, *models.RunRecord](
		compose.WithGenLocalState(genState),
	)

	data := []struct {
		node   string
		field  models.Field
		runner Runner
	}{
		{consts.Finance, models.FieldFinancialSummary, runners.Financial},
		{consts.Fundamentals, models.FieldFundamentalSummary, runners.Fundamentals},
		{consts.News, models.FieldNewsSummary, runners.News},
	}

	if err := g.AddLambdaNode(consts.Load, compose.InvokableLambda(loadSymbol), compose.WithNodeName(consts.Load)); err != nil {
		return nil, err
	}
	for _, d := range data {
		err := g.AddLambdaNode(d.node, compose.InvokableLambda(summaryNode(d.node, d.field, d.runner, log)),
			compose.WithNodeName(d.node),
			compose.WithOutputKey(string(d.field)))
		if err != nil {
			return nil, err
		}
	}
	if err := g.AddLambdaNode(consts.Conclusion, compose.InvokableLambda(conclusionNode(runners.Conclusion, log)), compose.WithNodeName(consts.Conclusion)); err != nil {
		return nil, err
	}

	if err := g.AddEdge(compose.START, consts.Load); err != nil {
		return nil, err
	}
	for _, d := range data {
		if err := g.AddEdge(consts.Load, d.node); err != nil {
			return nil, err
		}
		if err := g.AddEdge(d.node, consts.Conclusion); err != nil {
			return nil, err
		}
	}
	if err := g.AddEdge(consts.Conclusion, compose.END); err != nil {
		return nil, err
	}

	r, err := g.Compile(ctx,
		compose.WithGraphName(consts.GraphName),
		compose.WithNodeTriggerMode(compose.AllPredecessor),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s graph: %w", consts.GraphName, err)
	}
	return r, nil
}
