package agents

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

const defaultMaxStep = 12

// Agent is a chat model bound to a fixed role instruction and at most one tool.
// Whether and how often the tool is called is decided by the model.
type Agent struct {
	name        string
	instruction string
	tool        tool.BaseTool
	generate    func(ctx context.Context, input []*schema.Message) (*schema.Message, error)
}

type options struct {
	tool    tool.BaseTool
	maxStep int
}

type Option func(*options)

// WithTool binds the single tool the agent may call.
func WithTool(t tool.BaseTool) Option {
	return func(o *options) {
		o.tool = t
	}
}

// WithMaxStep bounds the number of model/tool steps of a tool-bound agent.
func WithMaxStep(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxStep = n
		}
	}
}

func New(ctx context.Context, name, instruction string, chatModel model.ToolCallingChatModel, opts ...Option) (*Agent, error) {
	o := options{maxStep: defaultMaxStep}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Agent{
		name:        name,
		instruction: instruction,
		tool:        o.tool,
	}

	if o.tool == nil {
		a.generate = func(ctx context.Context, input []*schema.Message) (*schema.Message, error) {
			return chatModel.Generate(ctx, a.withInstruction(input))
		}
		return a, nil
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		MaxStep:          o.maxStep,
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: []tool.BaseTool{o.tool},
		},
		MessageModifier: func(ctx context.Context, input []*schema.Message) []*schema.Message {
			return a.withInstruction(input)
		},
		StreamToolCallChecker: ToolCallChecker,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", name, err)
	}
	a.generate = func(ctx context.Context, input []*schema.Message) (*schema.Message, error) {
		return agent.Generate(ctx, input)
	}
	return a, nil
}

func (a *Agent) withInstruction(input []*schema.Message) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(input)+1)
	msgs = append(msgs, schema.SystemMessage(a.instruction))
	return append(msgs, input...)
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Instruction() string { return a.instruction }

// HasTool reports whether a tool is bound.
func (a *Agent) HasTool() bool { return a.tool != nil }

// Run sends input as the only user message and returns the model's final response.
// Model and tool errors are returned as is.
func (a *Agent) Run(ctx context.Context, input string) (*schema.Message, error) {
	msg, err := a.generate(ctx, []*schema.Message{schema.UserMessage(input)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return msg, nil
}
