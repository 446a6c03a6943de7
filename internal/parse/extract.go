package parse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Extract reads the session log at path and renders every user and
// assistant record after line `after` (1-based, exclusive).
func Extract(path string, after int, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	res, err := ExtractReader(f, after, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

func ExtractReader(r io.Reader, after int, opts Options) (*Result, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	result := &Result{}
	lineNum := 0

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(line) == 0 {
			break
		}
		lineNum++

		if lineNum > after {
			msg, decoded := decodeLine(line, lineNum, opts.MaxChars)
			if !decoded && err == io.EOF {
				// unterminated and undecodable: still being written, leave
				// it for the next run
				lineNum--
				break
			}
			if msg != nil {
				result.Messages = append(result.Messages, *msg)
			}
		}

		if err == io.EOF {
			break
		}
	}

	result.Lines = lineNum
	return result, nil
}

// decodeLine renders one log line. decoded is false when the line is not
// valid JSON; msg is nil when the record has nothing to export.
func decodeLine(line []byte, lineNum, maxChars int) (msg *Message, decoded bool) {
	var rec claudeRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, false
	}

	role, text, ok := renderRecord(rec, maxChars)
	if !ok || strings.TrimSpace(text) == "" {
		return nil, true
	}
	return &Message{Role: role, Text: text, LineNumber: lineNum}, true
}
