package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/dataflows"
)

// SymbolInput is the argument object every fetch tool accepts.
type SymbolInput struct {
	Symbol string `json:"symbol"`
}

// FetchFunc fetches one data category for a symbol.
type FetchFunc func(ctx context.Context, symbol string) (map[string]any, error)

var symbolParams = schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
	"symbol": {
		Type:     schema.String,
		Desc:     "The stock ticker symbol, e.g. AAPL",
		Required: true,
	},
})

// NewFetchTool wraps fetch as a tool. The symbol is forwarded as given and fetch
// errors are returned to the caller unchanged.
func NewFetchTool(name, desc string, fetch FetchFunc) tool.InvokableTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name:        name,
			Desc:        desc,
			ParamsOneOf: symbolParams,
		},
		func(ctx context.Context, input SymbolInput) (map[string]any, error) {
			return fetch(ctx, input.Symbol)
		},
	)
}

func NewFinanceTool(fmp *dataflows.FMPClient) tool.InvokableTool {
	return NewFetchTool(consts.Tool_Finance,
		"Fetch financial data (income statement, balance sheet, cash flow, key metrics, ratios, growth and market cap history) using FMP",
		fmp.Financials)
}

func NewFundamentalTool(fmp *dataflows.FMPClient) tool.InvokableTool {
	return NewFetchTool(consts.Tool_Fundamental,
		"Fetch fundamental data of a stock (company profile, statements, key metrics, ratios, earnings and quote) using FMP",
		fmp.Fundamentals)
}

func NewNewsTool(news *dataflows.NewsClient) tool.InvokableTool {
	return NewFetchTool(consts.Tool_News,
		"Fetch recent news articles about a stock using stockdata.org",
		news.News)
}
