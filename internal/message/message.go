// Package message normalizes chat model responses into plain text.
package message

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// PartTypeText is the discriminator of text fragments.
const PartTypeText = "text"

// PlainText is a response that is already a single string.
type PlainText string

// Fragment is one typed piece of a multi-part response.
type Fragment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Content returns the content variant carried by msg: its parts when the model
// answered with multiple parts, its plain text otherwise.
func Content(msg *schema.Message) any {
	if msg == nil {
		return ""
	}
	if len(msg.MultiContent) > 0 {
		return msg.MultiContent
	}
	return msg.Content
}

// ExtractText flattens content into a string. Strings are returned unchanged;
// sequences contribute the text of their "text" fragments in order; anything
// else is formatted with fmt. It never panics.
func ExtractText(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case PlainText:
		return string(v)
	case *schema.Message:
		return ExtractText(Content(v))
	case []Fragment:
		var sb strings.Builder
		for _, f := range v {
			if f.Type == PartTypeText {
				sb.WriteString(f.Text)
			}
		}
		return sb.String()
	case []schema.ChatMessagePart:
		var sb strings.Builder
		for _, p := range v {
			if p.Type == schema.ChatMessagePartTypeText {
				sb.WriteString(p.Text)
			}
		}
		return sb.String()
	case []any:
		var sb strings.Builder
		for _, item := range v {
			sb.WriteString(fragmentText(item))
		}
		return sb.String()
	case []map[string]any:
		var sb strings.Builder
		for _, item := range v {
			sb.WriteString(fragmentText(item))
		}
		return sb.String()
	default:
		return sequenceText(content)
	}
}

// sequenceText handles slices and arrays of any other element type; each
// element goes through fragmentText. Non-sequences are formatted with fmt.
func sequenceText(content any) string {
	rv := reflect.ValueOf(content)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Sprint(content)
	}
	var sb strings.Builder
	for i := 0; i < rv.Len(); i++ {
		sb.WriteString(fragmentText(rv.Index(i).Interface()))
	}
	return sb.String()
}

// fragmentText returns the payload of a text fragment and "" for anything else.
func fragmentText(item any) string {
	switch f := item.(type) {
	case Fragment:
		if f.Type == PartTypeText {
			return f.Text
		}
	case *Fragment:
		if f != nil && f.Type == PartTypeText {
			return f.Text
		}
	case schema.ChatMessagePart:
		if f.Type == schema.ChatMessagePartTypeText {
			return f.Text
		}
	case *schema.ChatMessagePart:
		if f != nil && f.Type == schema.ChatMessagePartTypeText {
			return f.Text
		}
	case map[string]any:
		if t, _ := f["type"].(string); t == PartTypeText {
			text, _ := f["text"].(string)
			return text
		}
	}
	return ""
}
