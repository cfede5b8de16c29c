package cli

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter stock symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "The symbol is sent to the data providers as entered, upper-cased",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		_, err := models.NormalizeSymbol(str)
		return err
	}))
	if err != nil {
		return "", err
	}

	return models.NormalizeSymbol(ticker)
}
