package parse

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one rendered user or assistant record.
type Message struct {
	Role       string // "user" or "assistant"
	Text       string
	LineNumber int // line number in original file
}

type Options struct {
	MaxChars int // truncation limit for tool input and tool results
}

type Result struct {
	Messages []Message
	Lines    int // absolute count of lines consumed, including skipped ones
}
