package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/ai-session-export/internal/parse"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)

func testOptions() Options {
	return Options{
		Title:       "Claude Code Conversation Log",
		SessionName: "abc.jsonl",
		Now:         fixedNow,
	}
}

func TestAppendNewDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")
	msgs := []parse.Message{
		{Role: parse.RoleUser, Text: "Hello"},
		{Role: parse.RoleAssistant, Text: "Hi there"},
	}

	wrote, err := Append(path, msgs, testOptions())
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "# Claude Code Conversation Log\n\n" +
		"**Session**: abc.jsonl\n\n" +
		"\n---\n\n" +
		"## Export: 2026-03-04 05:06:07\n\n" +
		"### User\n\nHello\n\n" +
		"### Assistant\n\nHi there\n\n"
	assert.Equal(t, want, string(data))
}

func TestAppendExistingDocumentKeepsBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")
	prior := "# My notes\n\nhand written\n"
	require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

	opts := testOptions()
	opts.Checkpoint = true
	_, err := Append(path, []parse.Message{{Role: parse.RoleUser, Text: "later"}}, opts)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	assert.True(t, strings.HasPrefix(got, prior))
	assert.NotContains(t, got, "**Session**")
	assert.Contains(t, got, "## Pre-Compaction Export: 2026-03-04 05:06:07\n\n")
	assert.True(t, strings.HasSuffix(got, "### User\n\nlater\n\n"))
}

func TestAppendEmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Append(path, []parse.Message{{Role: parse.RoleUser, Text: "x"}}, testOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Claude Code Conversation Log\n\n"))
}

func TestAppendNothingIsInert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")

	wrote, err := Append(path, nil, testOptions())
	require.NoError(t, err)
	assert.False(t, wrote)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRenderSectionPreservesOrder(t *testing.T) {
	msgs := []parse.Message{
		{Role: parse.RoleAssistant, Text: "one"},
		{Role: parse.RoleUser, Text: "two"},
		{Role: parse.RoleAssistant, Text: "three"},
	}
	out := RenderSection(msgs, testOptions())

	i1 := strings.Index(out, "one")
	i2 := strings.Index(out, "two")
	i3 := strings.Index(out, "three")
	assert.True(t, i1 < i2 && i2 < i3)
	assert.Equal(t, 2, strings.Count(out, "### Assistant"))
}

func TestHasContent(t *testing.T) {
	dir := t.TempDir()
	ok, err := HasContent(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	ok, err = HasContent(path)
	require.NoError(t, err)
	assert.True(t, ok)
}
