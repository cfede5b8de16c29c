package message

import (
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlainString(t *testing.T) {
	for _, s := range []string{"", "hello", "- bullet\n- bullet", "ünïcødé"} {
		assert.Equal(t, s, ExtractText(s))
		assert.Equal(t, s, ExtractText(PlainText(s)))
	}
}

func TestExtractTextFragments(t *testing.T) {
	var parts []any
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"text","text":"A"},{"type":"other"},{"type":"text","text":"B"}]`), &parts))
	assert.Equal(t, "AB", ExtractText(parts))

	assert.Equal(t, "AB", ExtractText([]Fragment{
		{Type: "text", Text: "A"},
		{Type: "thinking", Text: "hidden"},
		{Type: "text", Text: "B"},
	}))
}

func TestExtractTextEmptySequence(t *testing.T) {
	assert.Equal(t, "", ExtractText([]any{}))
	assert.Equal(t, "", ExtractText([]Fragment{}))
	assert.Equal(t, "", ExtractText([]schema.ChatMessagePart(nil)))
}

func TestExtractTextIgnoresNonFragments(t *testing.T) {
	content := []any{
		"loose string",
		42,
		nil,
		map[string]any{"type": "text", "text": "kept"},
		map[string]any{"type": "text", "text": 7},
		map[string]any{"type": 1, "text": "bad discriminator"},
		&Fragment{Type: "text", Text: "!"},
		(*Fragment)(nil),
	}
	assert.Equal(t, "kept!", ExtractText(content))
}

func TestExtractTextFallback(t *testing.T) {
	assert.Equal(t, "42", ExtractText(42))
	assert.Equal(t, "map[a:1]", ExtractText(map[string]int{"a": 1}))
	assert.Equal(t, "<nil>", ExtractText(nil))
	assert.NotPanics(t, func() {
		ExtractText(struct{ X chan int }{})
		ExtractText([]*Fragment{nil})
	})
}

func TestExtractTextAnySequence(t *testing.T) {
	assert.Equal(t, "AB", ExtractText([]*Fragment{{Type: "text", Text: "A"}, {Type: "image"}, {Type: "text", Text: "B"}}))
	assert.Equal(t, "A", ExtractText([]*schema.ChatMessagePart{
		{Type: schema.ChatMessagePartTypeText, Text: "A"},
		nil,
		{Type: schema.ChatMessagePartTypeImageURL},
	}))
	assert.Equal(t, "AB", ExtractText([2]Fragment{{Type: "text", Text: "A"}, {Type: "text", Text: "B"}}))
	assert.Equal(t, "", ExtractText([]string{"a", "b"}))
	assert.Equal(t, "", ExtractText([]int{1, 2}))
}

func TestContentFromMessage(t *testing.T) {
	plain := schema.AssistantMessage("- revenue up", nil)
	assert.Equal(t, "- revenue up", ExtractText(Content(plain)))

	multi := &schema.Message{
		Role: schema.Assistant,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: "Buy"},
			{Type: schema.ChatMessagePartTypeImageURL, ImageURL: &schema.ChatMessageImageURL{URL: "http://x"}},
			{Type: schema.ChatMessagePartTypeText, Text: " now"},
		},
	}
	assert.Equal(t, "Buy now", ExtractText(Content(multi)))
	assert.Equal(t, "Buy now", ExtractText(multi))
	assert.Equal(t, "", ExtractText(Content(nil)))
}
