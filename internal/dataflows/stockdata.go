package dataflows

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const ProviderStockData = "stockdata"

var NewsEndpoints = []Endpoint{
	{Label: "news", Path: "/v1/news/all"},
}

// NewsClient handles stockdata.org news API operations
type NewsClient struct {
	client   *resty.Client
	apiToken string
	log      *zap.Logger
}

func NewNewsClient(baseURL, apiToken string, timeout time.Duration, log *zap.Logger) *NewsClient {
	return &NewsClient{
		client:   newRestClient(baseURL, timeout),
		apiToken: apiToken,
		log:      log,
	}
}

// News fetches recent English news with entity filtering for symbol.
func (c *NewsClient) News(ctx context.Context, symbol string) (map[string]any, error) {
	params := map[string]string{
		"symbols":         symbol,
		"filter_entities": "true",
		"language":        "en",
		"api_token":       c.apiToken,
	}
	return fetchAll(ctx, c.client, c.log, ProviderStockData, NewsEndpoints, params)
}
