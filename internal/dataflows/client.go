package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Nithiyasree11/basic-stock-analyzer/internal/metrics"
)

// Endpoint is one fixed GET request of a fetcher. Label is the key the decoded
// body is stored under in the fetch result.
type Endpoint struct {
	Label string
	Path  string
}

// maxErrorBody is how many characters of a failed response body an error keeps.
const maxErrorBody = 200

// StatusError is returned when a provider answers with a non-200 status.
type StatusError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if r := []rune(body); len(r) > maxErrorBody {
		body = string(r[:maxErrorBody]) + "..."
	}
	return fmt.Sprintf("%s %s: API error %d: %s", e.Provider, e.Endpoint, e.StatusCode, body)
}

func newRestClient(baseURL string, timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return client
}

// fetchAll issues every endpoint concurrently with the same query parameters and
// returns label -> decoded JSON. The first failure cancels the rest and is returned.
func fetchAll(ctx context.Context, client *resty.Client, log *zap.Logger, provider string, endpoints []Endpoint, params map[string]string) (map[string]any, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]any, len(endpoints))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, ep := range endpoints {
		g.Go(func() error {
			data, err := fetchJSON(gctx, client, provider, ep, params)
			metrics.RecordFetch(provider, ep.Label, err)
			if err != nil {
				log.Warn("fetch failed",
					zap.String("provider", provider),
					zap.String("endpoint", ep.Label),
					zap.Error(err))
				return err
			}
			mu.Lock()
			result[ep.Label] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func fetchJSON(ctx context.Context, client *resty.Client, provider string, ep Endpoint, params map[string]string) (any, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(ep.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", provider, ep.Label, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{
			Provider:   provider,
			Endpoint:   ep.Label,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	var data any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s %s response: %w", provider, ep.Label, err)
	}
	return data, nil
}
