// Package progress persists the per-output resume cursor: the number of
// session log lines already exported into a given document.
package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const markerSuffix = ".lastline"

var errNegative = errors.New("negative line count")

// MarkerPath returns the hidden sidecar file that tracks outputPath,
// e.g. notes/chat.md -> notes/.chat.lastline.
func MarkerPath(outputPath string) string {
	dir, base := filepath.Split(outputPath)
	return filepath.Join(dir, "."+stem(base)+markerSuffix)
}

// stem strips the final extension; a name that only has a leading dot
// (".notes") is kept whole.
func stem(base string) string {
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

func Parse(data []byte) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

// Read returns the stored line count, or 0 when nothing has been exported
// yet or the marker cannot be read.
func Read(markerPath string) int {
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return 0
	}
	n, err := Parse(data)
	if err != nil {
		return 0
	}
	return n
}

// Write replaces the marker contents with n. The value goes to a temp file
// in the same directory first and is renamed over the marker.
func Write(markerPath string, n int) error {
	dir := filepath.Dir(markerPath)
	f, err := os.CreateTemp(dir, ".lastline-*")
	if err != nil {
		return fmt.Errorf("create temp marker: %w", err)
	}
	tmp := f.Name()

	if _, err := f.WriteString(strconv.Itoa(n)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write marker: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close marker: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod marker: %w", err)
	}
	if err := os.Rename(tmp, markerPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename marker: %w", err)
	}
	return nil
}
