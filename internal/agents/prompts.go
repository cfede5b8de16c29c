package agents

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed prompts
var promptFiles embed.FS

const (
	PromptFinancialAnalyst    = "financial_analyst"
	PromptFundamentalsAnalyst = "fundamentals_analyst"
	PromptNewsAnalyst         = "news_analyst"
	PromptSeniorExpert        = "senior_expert"
)

// LoadPrompt loads a role instruction from the embedded markdown files
func LoadPrompt(name string) (string, error) {
	content, err := promptFiles.ReadFile(fmt.Sprintf("prompts/%s.md", name))
	if err != nil {
		return "", fmt.Errorf("failed to load prompt %s: %w", name, err)
	}
	return strings.TrimSpace(string(content)), nil
}
