package dataflows

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const ProviderFMP = "fmp"

var (
	incomeStatement   = Endpoint{Label: "income_statement", Path: "/stable/income-statement"}
	balanceSheet      = Endpoint{Label: "balance_sheet", Path: "/stable/balance-sheet-statement"}
	cashFlow          = Endpoint{Label: "cash_flow", Path: "/stable/cash-flow-statement"}
	keyMetrics        = Endpoint{Label: "key_metrics", Path: "/stable/key-metrics"}
	financialRatios   = Endpoint{Label: "financial_ratios", Path: "/stable/ratios-ttm"}
	incomeStatementHi = Endpoint{Label: "income_statement_historical", Path: "/stable/income-statement-growth"}
	balanceSheetHi    = Endpoint{Label: "balance_sheet_historical", Path: "/stable/balance-sheet-statement-growth"}
	marketCapHi       = Endpoint{Label: "market_cap_historical", Path: "/stable/historical-market-capitalization"}
	companyProfile    = Endpoint{Label: "company_profile", Path: "/stable/profile"}
	earningReports    = Endpoint{Label: "earning_reports", Path: "/stable/earnings"}
	stockQuote        = Endpoint{Label: "stock_quote", Path: "/stable/quote"}
)

// FinancialEndpoints are the statements, ratios and history behind the financial summary.
var FinancialEndpoints = []Endpoint{
	incomeStatement,
	balanceSheet,
	cashFlow,
	keyMetrics,
	financialRatios,
	incomeStatementHi,
	balanceSheetHi,
	marketCapHi,
}

// FundamentalEndpoints overlap with FinancialEndpoints and add profile, earnings and quote.
var FundamentalEndpoints = []Endpoint{
	companyProfile,
	incomeStatement,
	balanceSheet,
	cashFlow,
	keyMetrics,
	financialRatios,
	earningReports,
	stockQuote,
}

// FMPClient handles Financial Modeling Prep API operations
type FMPClient struct {
	client *resty.Client
	apiKey string
	log    *zap.Logger
}

func NewFMPClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *FMPClient {
	return &FMPClient{
		client: newRestClient(baseURL, timeout),
		apiKey: apiKey,
		log:    log,
	}
}

func (c *FMPClient) params(symbol string) map[string]string {
	return map[string]string{
		"symbol": symbol,
		"apikey": c.apiKey,
	}
}

// Financials fetches the comprehensive financial statements for symbol.
func (c *FMPClient) Financials(ctx context.Context, symbol string) (map[string]any, error) {
	return fetchAll(ctx, c.client, c.log, ProviderFMP, FinancialEndpoints, c.params(symbol))
}

// Fundamentals fetches profile, quote, earnings and core statements for symbol.
func (c *FMPClient) Fundamentals(ctx context.Context, symbol string) (map[string]any, error) {
	return fetchAll(ctx, c.client, c.log, ProviderFMP, FundamentalEndpoints, c.params(symbol))
}
