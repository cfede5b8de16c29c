// Package agentstesting provides a scripted chat model for tests.
package agentstesting

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// RespondFunc produces the model's answer for one call.
type RespondFunc func(ctx context.Context, input []*schema.Message, tools []*schema.ToolInfo) (*schema.Message, error)

// Call is one recorded Generate/Stream call.
type Call struct {
	Input []*schema.Message
	Tools []string
}

// System returns the content of the first system message of the call.
func (c Call) System() string {
	for _, m := range c.Input {
		if m.Role == schema.System {
			return m.Content
		}
	}
	return ""
}

type recorder struct {
	mu    sync.Mutex
	calls []Call
}

// FakeModel is a model.ToolCallingChatModel whose answers come from a RespondFunc.
// Models derived with WithTools share the call log of their parent.
type FakeModel struct {
	respond RespondFunc
	tools   []*schema.ToolInfo
	rec     *recorder
}

func NewFakeModel(respond RespondFunc) *FakeModel {
	return &FakeModel{respond: respond, rec: &recorder{}}
}

func (m *FakeModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	names := make([]string, 0, len(m.tools))
	for _, t := range m.tools {
		names = append(names, t.Name)
	}
	m.rec.mu.Lock()
	m.rec.calls = append(m.rec.calls, Call{Input: append([]*schema.Message(nil), input...), Tools: names})
	m.rec.mu.Unlock()

	return m.respond(ctx, input, m.tools)
}

func (m *FakeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *FakeModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return &FakeModel{respond: m.respond, tools: tools, rec: m.rec}, nil
}

// Calls returns every call made so far, across derived models.
func (m *FakeModel) Calls() []Call {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	return append([]Call(nil), m.rec.calls...)
}

// Analyst answers like a cooperative analyst. With a tool bound and no tool
// result in the conversation yet, it calls the first tool with the user message
// as symbol. Otherwise it answers with summarize(system, user, toolResult).
func Analyst(summarize func(system, user, toolResult string) string) RespondFunc {
	return func(ctx context.Context, input []*schema.Message, tools []*schema.ToolInfo) (*schema.Message, error) {
		var system, user, toolResult string
		toolCalled := false
		for _, m := range input {
			switch m.Role {
			case schema.System:
				system = m.Content
			case schema.User:
				user = m.Content
			case schema.Tool:
				toolCalled = true
				toolResult = m.Content
			}
		}

		if len(tools) > 0 && !toolCalled {
			args, _ := json.Marshal(map[string]string{"symbol": user})
			return schema.AssistantMessage("", []schema.ToolCall{{
				ID:   "call_" + tools[0].Name,
				Type: "function",
				Function: schema.FunctionCall{
					Name:      tools[0].Name,
					Arguments: string(args),
				},
			}}), nil
		}
		return schema.AssistantMessage(summarize(system, user, toolResult), nil), nil
	}
}
