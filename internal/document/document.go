// Package document appends rendered conversation sections to a Markdown
// file. Existing bytes are never rewritten.
package document

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Zuo-Peng/ai-session-export/internal/parse"
)

const timeLayout = "2006-01-02 15:04:05"

type Options struct {
	Title       string    // document title, written once
	SessionName string    // session log base name shown under the title
	Checkpoint  bool      // section written right before a compaction
	Now         time.Time // section timestamp; zero means time.Now()
}

// Header is written only when the document is absent or empty.
func Header(opts Options) string {
	return fmt.Sprintf("# %s\n\n**Session**: %s\n\n", opts.Title, opts.SessionName)
}

// RenderSection formats msgs as one export section.
func RenderSection(msgs []parse.Message, opts Options) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	heading := "Export"
	if opts.Checkpoint {
		heading = "Pre-Compaction Export"
	}

	var b strings.Builder
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "## %s: %s\n\n", heading, now.Local().Format(timeLayout))

	for _, m := range msgs {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", roleLabel(m.Role), m.Text)
	}
	return b.String()
}

func roleLabel(role string) string {
	if role == parse.RoleUser {
		return "User"
	}
	return "Assistant"
}

// HasContent reports whether path exists and is non-empty.
func HasContent(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}

// Append writes a new section for msgs to the document at path, preceded
// by the header if the document has no content yet. It returns false
// without touching the file when msgs is empty.
func Append(path string, msgs []parse.Message, opts Options) (bool, error) {
	if len(msgs) == 0 {
		return false, nil
	}

	exists, err := HasContent(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	var b strings.Builder
	if !exists {
		b.WriteString(Header(opts))
	}
	b.WriteString(RenderSection(msgs, opts))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return false, fmt.Errorf("append %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", path, err)
	}
	return true, nil
}
