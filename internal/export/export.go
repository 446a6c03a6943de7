// Package export runs one incremental export of a Claude Code session log
// into a Markdown document.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Zuo-Peng/ai-session-export/internal/config"
	"github.com/Zuo-Peng/ai-session-export/internal/document"
	"github.com/Zuo-Peng/ai-session-export/internal/history"
	"github.com/Zuo-Peng/ai-session-export/internal/locate"
	"github.com/Zuo-Peng/ai-session-export/internal/parse"
	"github.com/Zuo-Peng/ai-session-export/internal/progress"
)

var ErrSessionNotFound = errors.New("session file not found")

type Request struct {
	SessionID  string
	OutputPath string
	Checkpoint bool   // pre-compaction export
	WorkDir    string // "" = current directory
}

// Recorder stores completed runs. *history.DB satisfies it.
type Recorder interface {
	Record(history.Run) (int64, error)
}

type Exporter struct {
	Config  *config.Config
	History Recorder     // optional
	Logger  *slog.Logger // optional
	Now     func() time.Time
}

// Pending is what the next export of a request would contain.
type Pending struct {
	SessionFile string
	MarkerPath  string
	StartLine   int
	Extracted   *parse.Result
}

type Result struct {
	SessionFile string
	OutputPath  string
	StartLine   int // marker value before the run
	EndLine     int // marker value after the run
	Exported    int
	NothingNew  bool
}

// Pending resolves the session log for req and extracts everything after
// the stored marker without writing anything.
func (e *Exporter) Pending(req Request) (*Pending, error) {
	log := e.logger()

	workDir := req.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	projectDir, err := locate.ResolveProjectDir(e.Config.ClaudeRoot, workDir)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved project dir", "dir", projectDir, "cwd", workDir)

	sessionFile := locate.SessionPath(projectDir, req.SessionID)
	if _, err := os.Stat(sessionFile); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionFile)
		}
		return nil, fmt.Errorf("stat session file: %w", err)
	}

	markerPath := progress.MarkerPath(req.OutputPath)
	start := progress.Read(markerPath)
	log.Debug("resuming", "marker", markerPath, "line", start)

	extracted, err := parse.Extract(sessionFile, start, parse.Options{MaxChars: e.Config.MaxChars})
	if err != nil {
		return nil, err
	}
	log.Debug("extracted", "messages", len(extracted.Messages), "lines", extracted.Lines)

	return &Pending{
		SessionFile: sessionFile,
		MarkerPath:  markerPath,
		StartLine:   start,
		Extracted:   extracted,
	}, nil
}

// Run appends every new message to the output document and advances the
// marker. The marker is left untouched when there is nothing to export.
func (e *Exporter) Run(req Request) (*Result, error) {
	p, err := e.Pending(req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SessionFile: p.SessionFile,
		OutputPath:  req.OutputPath,
		StartLine:   p.StartLine,
		EndLine:     p.StartLine,
	}

	msgs := p.Extracted.Messages
	if len(msgs) == 0 {
		result.NothingNew = true
		return result, nil
	}

	now := e.now()
	_, err = document.Append(req.OutputPath, msgs, e.DocumentOptions(p.SessionFile, req.Checkpoint, now))
	if err != nil {
		return nil, err
	}

	if err := progress.Write(p.MarkerPath, p.Extracted.Lines); err != nil {
		return nil, fmt.Errorf("save marker: %w", err)
	}
	result.EndLine = p.Extracted.Lines
	result.Exported = len(msgs)

	e.record(req, result, now)
	return result, nil
}

// DocumentOptions builds the appender options for a section of sessionFile.
func (e *Exporter) DocumentOptions(sessionFile string, checkpoint bool, now time.Time) document.Options {
	return document.Options{
		Title:       e.Config.Title,
		SessionName: filepath.Base(sessionFile),
		Checkpoint:  checkpoint,
		Now:         now,
	}
}

func (e *Exporter) record(req Request, res *Result, now time.Time) {
	if e.History == nil {
		return
	}
	outputPath := req.OutputPath
	if abs, err := filepath.Abs(outputPath); err == nil {
		outputPath = abs
	}
	_, err := e.History.Record(history.Run{
		SessionID:   req.SessionID,
		SessionFile: res.SessionFile,
		OutputPath:  outputPath,
		FromLine:    res.StartLine + 1,
		ToLine:      res.EndLine,
		Messages:    res.Exported,
		Checkpoint:  req.Checkpoint,
		ExportedAt:  now,
	})
	if err != nil {
		// document and marker are already written
		e.logger().Warn("record export history", "err", err)
	}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
