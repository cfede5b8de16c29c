package graph

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/internal/metrics"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

type runnerFunc func(ctx context.Context, input string) (*schema.Message, error)

func (f runnerFunc) Run(ctx context.Context, input string) (*schema.Message, error) {
	return f(ctx, input)
}

// stepRecorder counts finished data steps and captures what the conclusion saw.
type stepRecorder struct {
	mu                sync.Mutex
	inputs            map[string]string
	done              atomic.Int32
	doneAtConclusion  int32
	conclusionInput   string
	conclusionInvoked atomic.Int32
}

func newStepRecorder() *stepRecorder {
	return &stepRecorder{inputs: map[string]string{}}
}

func (r *stepRecorder) data(name string, delay time.Duration, out string, err error) Runner {
	return runnerFunc(func(ctx context.Context, input string) (*schema.Message, error) {
		r.mu.Lock()
		r.inputs[name] = input
		r.mu.Unlock()

		time.Sleep(delay)
		if err != nil {
			return nil, err
		}
		r.done.Add(1)
		return schema.AssistantMessage(out, nil), nil
	})
}

func (r *stepRecorder) conclusion(out string) Runner {
	return runnerFunc(func(ctx context.Context, input string) (*schema.Message, error) {
		r.conclusionInvoked.Add(1)
		r.mu.Lock()
		r.doneAtConclusion = r.done.Load()
		r.conclusionInput = input
		r.mu.Unlock()
		return schema.AssistantMessage(out, nil), nil
	})
}

func newTestAnalyzer(t *testing.T, runners Runners, timeout time.Duration) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(context.Background(), runners, zap.NewNop(), timeout)
	require.NoError(t, err)
	return a
}

func TestAnalyzeJoinsAllThreeSummaries(t *testing.T) {
	rec := newStepRecorder()
	a := newTestAnalyzer(t, Runners{
		Financial:    rec.data("financial", 30*time.Millisecond, "fin", nil),
		Fundamentals: rec.data("fundamentals", 5*time.Millisecond, "fund", nil),
		News:         rec.data("news", 60*time.Millisecond, "news", nil),
		Conclusion:   rec.conclusion("Hold"),
	}, time.Minute)

	out, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, int32(3), rec.doneAtConclusion)
	assert.Equal(t, int32(1), rec.conclusionInvoked.Load())
	assert.Equal(t, "Financials: fin\nFundamentals: fund\nNews: news\n", rec.conclusionInput)
	assert.Equal(t, map[string]string{"financial": "AAPL", "fundamentals": "AAPL", "news": "AAPL"}, rec.inputs)

	require.NotNil(t, out)
	assert.Equal(t, "AAPL", out.Symbol)
	for f, want := range map[models.Field]string{
		models.FieldFinancialSummary:   "fin",
		models.FieldFundamentalSummary: "fund",
		models.FieldNewsSummary:        "news",
		models.FieldConclusion:         "Hold",
	} {
		got, ok := out.Get(f)
		assert.True(t, ok, f)
		assert.Equal(t, want, got, f)
	}
}

func TestAnalyzeNormalizesSymbol(t *testing.T) {
	rec := newStepRecorder()
	a := newTestAnalyzer(t, Runners{
		Financial:    rec.data("financial", 0, "a", nil),
		Fundamentals: rec.data("fundamentals", 0, "b", nil),
		News:         rec.data("news", 0, "c", nil),
		Conclusion:   rec.conclusion("d"),
	}, 0)

	out, err := a.Analyze(context.Background(), "  msft ")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", out.Symbol)
	assert.Equal(t, "MSFT", rec.inputs["news"])

	_, err = a.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrEmptySymbol)
}

func TestAnalyzeExtractsMultipartContent(t *testing.T) {
	multi := runnerFunc(func(ctx context.Context, input string) (*schema.Message, error) {
		return &schema.Message{
			Role: schema.Assistant,
			MultiContent: []schema.ChatMessagePart{
				{Type: schema.ChatMessagePartTypeText, Text: "- up "},
				{Type: schema.ChatMessagePartTypeImageURL},
				{Type: schema.ChatMessagePartTypeText, Text: "- down"},
			},
		}, nil
	})
	rec := newStepRecorder()
	a := newTestAnalyzer(t, Runners{
		Financial:    multi,
		Fundamentals: rec.data("fundamentals", 0, "b", nil),
		News:         rec.data("news", 0, "c", nil),
		Conclusion:   rec.conclusion("d"),
	}, 0)

	out, err := a.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "- up - down", *out.FinancialSummary)
	assert.Contains(t, rec.conclusionInput, "Financials: - up - down\n")
}

func TestAnalyzeFailsFast(t *testing.T) {
	boom := errors.New("fmp ratios-ttm: API error 500")
	rec := newStepRecorder()
	a := newTestAnalyzer(t, Runners{
		Financial:    rec.data("financial", 0, "", boom),
		Fundamentals: rec.data("fundamentals", 20*time.Millisecond, "b", nil),
		News:         rec.data("news", 20*time.Millisecond, "c", nil),
		Conclusion:   rec.conclusion("d"),
	}, time.Minute)

	before := testutil.ToFloat64(metrics.Runs.WithLabelValues("error"))
	out, err := a.Analyze(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 500")
	assert.Nil(t, out)

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, rec.conclusionInvoked.Load())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Runs.WithLabelValues("error")))
}

func TestAnalyzeTimeoutFailsWholeRun(t *testing.T) {
	blocking := runnerFunc(func(ctx context.Context, input string) (*schema.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	rec := newStepRecorder()
	a := newTestAnalyzer(t, Runners{
		Financial:    rec.data("financial", 0, "a", nil),
		Fundamentals: rec.data("fundamentals", 0, "b", nil),
		News:         blocking,
		Conclusion:   rec.conclusion("d"),
	}, 50*time.Millisecond)

	out, err := a.Analyze(context.Background(), "AAPL")
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Zero(t, rec.conclusionInvoked.Load())
}

func TestNewAnalyzerRequiresAllRunners(t *testing.T) {
	rec := newStepRecorder()
	_, err := NewAnalyzer(context.Background(), Runners{
		Financial:  rec.data("financial", 0, "a", nil),
		Conclusion: rec.conclusion("d"),
	}, nil, 0)
	assert.Error(t, err)
}

func TestConclusionNodeWithoutStateFails(t *testing.T) {
	rec := newStepRecorder()
	run := conclusionNode(rec.conclusion("Buy"), zap.NewNop())

	out, err := run(context.Background(), map[string]any{})
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Zero(t, rec.conclusionInvoked.Load())
}
