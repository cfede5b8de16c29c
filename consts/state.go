package consts

const (
	Agent_FinancialAnalyst    = "Financial Analyst"
	Agent_FundamentalsAnalyst = "Fundamentals Analyst"
	Agent_NewsAnalyst         = "News Analyst"
	Agent_SeniorExpert        = "Senior Financial Expert"
)

// Tool names as seen by the model.
const (
	Tool_Finance     = "finance_tool"
	Tool_Fundamental = "fundamental_tool"
	Tool_News        = "news_tool"
)

// MissingSummary stands in for a summary that was never produced.
const MissingSummary = "N/A"
