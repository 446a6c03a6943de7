package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const defaultMaxChars = 500

type claudeRecord struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

type claudeMessage struct {
	Content Content `json:"content"`
}

type ContentKind int

const (
	ContentEmpty  ContentKind = iota
	ContentText               // plain string
	ContentBlocks             // list of typed blocks
	ContentOther              // any other JSON value, kept as compact text
)

// Content is message.content, which Claude Code writes either as a plain
// string or as an ordered list of content blocks.
type Content struct {
	Kind   ContentKind
	Text   string
	Blocks []Block
}

func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Content{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		c.Kind = ContentText
		return json.Unmarshal(data, &c.Text)
	case data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		c.Kind = ContentBlocks
		for _, r := range raw {
			var b Block
			if err := json.Unmarshal(r, &b); err != nil {
				continue // not a block object
			}
			c.Blocks = append(c.Blocks, b)
		}
		return nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		c.Kind = ContentOther
		c.Text = buf.String()
		return nil
	}
}

// Block is a single content block. Only the fields of the text,
// tool_use and tool_result variants are decoded.
type Block struct {
	Type    string          `json:"type"`
	Text    string          `json:"text"`
	Name    string          `json:"name"`
	Input   json.RawMessage `json:"input"`
	Content json.RawMessage `json:"content"`
}

const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// Render flattens the content into readable text.
func (c Content) Render(maxChars int) string {
	switch c.Kind {
	case ContentText, ContentOther:
		return c.Text
	case ContentBlocks:
		var parts []string
		for _, b := range c.Blocks {
			if s, ok := b.render(maxChars); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

func (b Block) render(maxChars int) (string, bool) {
	switch b.Type {
	case BlockText:
		return b.Text, true

	case BlockToolUse:
		name := b.Name
		if name == "" {
			name = "unknown"
		}
		input := truncate(indentJSON(b.Input), maxChars)
		return fmt.Sprintf("\n**Tool: %s**\n```json\n%s\n```\n", name, input), true

	case BlockToolResult:
		result, ok := toolResultText(b.Content)
		if !ok {
			// structured results (lists of blocks, images) are not rendered
			return "", false
		}
		return fmt.Sprintf("\n**Tool Result:**\n```\n%s\n```\n", truncate(result, maxChars)), true
	}
	return "", false
}

// indentJSON pretty-prints raw with two-space indentation, keeping the
// original key order. A missing input renders as an empty object.
func indentJSON(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func toolResultText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", true
	}
	if raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// truncate keeps the first max characters of s and appends "..." when
// anything was cut.
func truncate(s string, max int) string {
	if max <= 0 {
		max = defaultMaxChars
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

// renderRecord returns the role and text of a user or assistant record.
// ok is false for records of any other type.
func renderRecord(rec claudeRecord, maxChars int) (role, text string, ok bool) {
	if rec.Type != RoleUser && rec.Type != RoleAssistant {
		return "", "", false
	}

	raw := bytes.TrimSpace(rec.Message)
	switch {
	case len(raw) == 0:
		return rec.Type, "", true
	case raw[0] == '{':
		var msg claudeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return rec.Type, "", true
		}
		return rec.Type, msg.Content.Render(maxChars), true
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return rec.Type, "", true
		}
		return rec.Type, s, true
	default:
		return rec.Type, "", true
	}
}
