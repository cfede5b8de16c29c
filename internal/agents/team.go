package agents

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
)

// Team is the four agents of one analysis: three data analysts and the
// senior expert who writes the conclusion.
type Team struct {
	Financial    *Agent
	Fundamentals *Agent
	News         *Agent
	Conclusion   *Agent
}

// Tools are the data tools handed to the analysts, one each.
type Tools struct {
	Finance     tool.BaseTool
	Fundamental tool.BaseTool
	News        tool.BaseTool
}

func NewTeam(ctx context.Context, chatModel model.ToolCallingChatModel, tools Tools, maxStep int) (*Team, error) {
	build := func(name, prompt string, t tool.BaseTool) (*Agent, error) {
		instruction, err := LoadPrompt(prompt)
		if err != nil {
			return nil, err
		}
		opts := []Option{WithMaxStep(maxStep)}
		if t != nil {
			opts = append(opts, WithTool(t))
		}
		return New(ctx, name, instruction, chatModel, opts...)
	}

	var (
		team = &Team{}
		err  error
	)
	if team.Financial, err = build(consts.Agent_FinancialAnalyst, PromptFinancialAnalyst, tools.Finance); err != nil {
		return nil, err
	}
	if team.Fundamentals, err = build(consts.Agent_FundamentalsAnalyst, PromptFundamentalsAnalyst, tools.Fundamental); err != nil {
		return nil, err
	}
	if team.News, err = build(consts.Agent_NewsAnalyst, PromptNewsAnalyst, tools.News); err != nil {
		return nil, err
	}
	// The senior expert's instruction walks through calling the three data
	// tools, but it is built without any and only sees the composed summaries.
	if team.Conclusion, err = build(consts.Agent_SeniorExpert, PromptSeniorExpert, nil); err != nil {
		return nil, err
	}
	return team, nil
}
