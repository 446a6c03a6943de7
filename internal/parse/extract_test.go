package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userHello      = `{"type":"user","message":{"content":"Hello"}}`
	assistantHiThe = `{"type":"assistant","message":{"content":[{"type":"text","text":"Hi there"}]}}`
)

func extractString(t *testing.T, data string, after int) *Result {
	t.Helper()
	res, err := ExtractReader(strings.NewReader(data), after, Options{MaxChars: 500})
	require.NoError(t, err)
	return res
}

func TestExtractScenario(t *testing.T) {
	res := extractString(t, userHello+"\n"+assistantHiThe+"\n", 0)

	assert.Equal(t, 2, res.Lines)
	assert.Equal(t, []Message{
		{Role: RoleUser, Text: "Hello", LineNumber: 1},
		{Role: RoleAssistant, Text: "Hi there", LineNumber: 2},
	}, res.Messages)
}

func TestExtractResumesAfterLine(t *testing.T) {
	res := extractString(t, userHello+"\n"+assistantHiThe+"\n", 1)

	assert.Equal(t, 2, res.Lines)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "Hi there", res.Messages[0].Text)
	assert.Equal(t, 2, res.Messages[0].LineNumber)
}

func TestExtractNothingNew(t *testing.T) {
	res := extractString(t, userHello+"\n"+assistantHiThe+"\n", 2)
	assert.Equal(t, 2, res.Lines)
	assert.Empty(t, res.Messages)
}

func TestExtractCorruptLineCounted(t *testing.T) {
	data := userHello + "\n{not json\n" + assistantHiThe + "\n"
	res := extractString(t, data, 0)

	assert.Equal(t, 3, res.Lines)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, 3, res.Messages[1].LineNumber)
}

func TestExtractBlankAndIgnoredLinesCounted(t *testing.T) {
	data := "\n" +
		`{"type":"summary","summary":"x"}` + "\n" +
		`{"type":"user","message":{"content":"   "}}` + "\n" +
		userHello + "\n"
	res := extractString(t, data, 0)

	assert.Equal(t, 4, res.Lines)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, 4, res.Messages[0].LineNumber)
}

func TestExtractFinalLineWithoutNewline(t *testing.T) {
	res := extractString(t, userHello+"\n"+assistantHiThe, 0)
	assert.Equal(t, 2, res.Lines)
	assert.Len(t, res.Messages, 2)
}

func TestExtractPartialFinalLineNotConsumed(t *testing.T) {
	data := userHello + "\n" + `{"type":"assistant","message":{"con`
	res := extractString(t, data, 0)

	assert.Equal(t, 1, res.Lines)
	assert.Len(t, res.Messages, 1)
}

func TestExtractFewerLinesThanMarker(t *testing.T) {
	res := extractString(t, userHello+"\n", 5)
	assert.Equal(t, 1, res.Lines)
	assert.Empty(t, res.Messages)
}

func TestExtractLongLine(t *testing.T) {
	big := strings.Repeat("z", 200*1024)
	res := extractString(t, `{"type":"user","message":{"content":"`+big+`"}}`+"\n", 0)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, big, res.Messages[0].Text)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(userHello+"\n"), 0o644))

	res, err := Extract(path, 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Lines)

	_, err = Extract(filepath.Join(t.TempDir(), "missing.jsonl"), 0, Options{})
	assert.Error(t, err)
}
