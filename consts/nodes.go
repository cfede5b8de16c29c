package consts

// Graph node keys.
const (
	Load         = "load"
	Finance      = "finance"
	Fundamentals = "fundamentals"
	News         = "news"
	Conclusion   = "conclusion"
)

// GraphName is the name the analysis graph is compiled under.
const GraphName = "StockAnalyzer"
