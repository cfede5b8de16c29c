package dataflows

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedRequest struct {
	path  string
	query map[string]string
}

func newFakeProvider(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		mu.Lock()
		seen = append(seen, recordedRequest{path: r.URL.Path, query: q})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), seen...)
	}
}

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `[{"path":%q}]`, r.URL.Path)
}

func TestFMPFinancials(t *testing.T) {
	srv, requests := newFakeProvider(t, echoPath)
	client := NewFMPClient(srv.URL, "fmp-key", 5*time.Second, zap.NewNop())

	data, err := client.Financials(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, data, len(FinancialEndpoints))

	for _, ep := range FinancialEndpoints {
		require.Contains(t, data, ep.Label)
		rows, ok := data[ep.Label].([]any)
		require.True(t, ok, ep.Label)
		assert.Equal(t, ep.Path, rows[0].(map[string]any)["path"])
	}

	reqs := requests()
	assert.Len(t, reqs, 8)
	for _, r := range reqs {
		assert.Equal(t, map[string]string{"symbol": "AAPL", "apikey": "fmp-key"}, r.query)
	}
}

func TestFMPFundamentals(t *testing.T) {
	srv, requests := newFakeProvider(t, echoPath)
	client := NewFMPClient(srv.URL, "fmp-key", 5*time.Second, zap.NewNop())

	data, err := client.Fundamentals(context.Background(), "MSFT")
	require.NoError(t, err)

	for _, label := range []string{"company_profile", "earning_reports", "stock_quote", "income_statement"} {
		assert.Contains(t, data, label)
	}
	assert.Len(t, requests(), 8)
}

func TestFMPSymbolPassedVerbatim(t *testing.T) {
	srv, requests := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	client := NewFMPClient(srv.URL, "", 5*time.Second, zap.NewNop())

	data, err := client.Financials(context.Background(), "not a ticker")
	require.NoError(t, err)
	assert.Equal(t, []any{}, data["income_statement"])
	assert.Equal(t, "not a ticker", requests()[0].query["symbol"])
}

func TestFMPNon200Fails(t *testing.T) {
	srv, _ := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stable/key-metrics" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"Error Message":"Invalid API KEY."}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	client := NewFMPClient(srv.URL, "bad", 5*time.Second, zap.NewNop())

	data, err := client.Financials(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Nil(t, data)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "key_metrics", se.Endpoint)
	assert.Contains(t, err.Error(), "Invalid API KEY")
}

func TestFMPNonJSONFails(t *testing.T) {
	srv, _ := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})
	client := NewFMPClient(srv.URL, "k", 5*time.Second, zap.NewNop())

	_, err := client.Fundamentals(context.Background(), "AAPL")
	assert.ErrorContains(t, err, "failed to parse fmp")
}

func TestNewsClient(t *testing.T) {
	srv, requests := newFakeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"title":"Apple beats estimates"}]}`))
	})
	client := NewNewsClient(srv.URL, "news-token", 5*time.Second, zap.NewNop())

	data, err := client.News(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Contains(t, data, "news")

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/v1/news/all", reqs[0].path)
	assert.Equal(t, map[string]string{
		"symbols":         "AAPL",
		"filter_entities": "true",
		"language":        "en",
		"api_token":       "news-token",
	}, reqs[0].query)
}

func TestStatusErrorTruncatesBody(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	err := &StatusError{Provider: "fmp", Endpoint: "quote", StatusCode: 500, Body: string(long)}
	assert.Less(t, len(err.Error()), 260)
}

func TestStatusErrorTruncatesOnCharacters(t *testing.T) {
	body := strings.Repeat("é", 150) + strings.Repeat("€", 150)
	err := &StatusError{Provider: "stockdata", Endpoint: "news", StatusCode: 429, Body: body}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("€", 50)+"..."))
}

func TestEndpointLabels(t *testing.T) {
	labels := func(eps []Endpoint) []string {
		out := make([]string, 0, len(eps))
		for _, ep := range eps {
			out = append(out, ep.Label)
		}
		return out
	}

	assert.Equal(t, []string{
		"income_statement", "balance_sheet", "cash_flow", "key_metrics", "financial_ratios",
		"income_statement_historical", "balance_sheet_historical", "market_cap_historical",
	}, labels(FinancialEndpoints))
	assert.Equal(t, []string{
		"company_profile", "income_statement", "balance_sheet", "cash_flow", "key_metrics",
		"financial_ratios", "earning_reports", "stock_quote",
	}, labels(FundamentalEndpoints))
	assert.Equal(t, []string{"news"}, labels(NewsEndpoints))
}
