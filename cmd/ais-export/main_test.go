package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/ai-session-export/internal/locate"
)

// setupProject creates a fake HOME with one session log for a project
// rooted at the returned working directory, and chdirs into it.
func setupProject(t *testing.T, lines string) (workDir string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	workDir = filepath.Join(home, "work", "proj")
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	workDir, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)

	projectDir := filepath.Join(home, ".claude", "projects", locate.ProjectSlug(workDir))
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "sess.jsonl"), []byte(lines), 0o644))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Setenv("PWD", workDir)
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return workDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommandWritesDocumentAndMarker(t *testing.T) {
	workDir := setupProject(t,
		`{"type":"user","message":{"content":"Hello"}}`+"\n"+
			`{"type":"assistant","message":{"content":[{"type":"text","text":"Hi there"}]}}`+"\n")

	_, err := execute(t, "sess", "chat.md")
	require.NoError(t, err)

	doc, err := os.ReadFile(filepath.Join(workDir, "chat.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "**Session**: sess.jsonl")
	assert.Contains(t, string(doc), "### User\n\nHello\n\n")
	assert.Contains(t, string(doc), "### Assistant\n\nHi there\n\n")

	marker, err := os.ReadFile(filepath.Join(workDir, ".chat.lastline"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(marker))

	// second run is a no-op
	_, err = execute(t, "sess", "chat.md")
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(workDir, "chat.md"))
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestExportCommandAppendMode(t *testing.T) {
	workDir := setupProject(t, `{"type":"user","message":{"content":"Hello"}}`+"\n")

	_, err := execute(t, "--append", "sess", "chat.md")
	require.NoError(t, err)

	doc, err := os.ReadFile(filepath.Join(workDir, "chat.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "## Pre-Compaction Export: ")
}

func TestExportCommandUsageErrors(t *testing.T) {
	setupProject(t, "")

	out, err := execute(t, "only-one")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")

	_, err = execute(t, "--append", "only-one")
	require.Error(t, err)

	_, err = execute(t, "a", "b", "c")
	require.Error(t, err)
}

func TestExportCommandMissingSession(t *testing.T) {
	setupProject(t, "")

	out, err := execute(t, "nope", "chat.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session file not found")
	assert.NotContains(t, out, "Usage:")
}
