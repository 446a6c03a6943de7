package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	delimiter  = "-"
	sessionExt = ".jsonl"
)

var ErrProjectNotFound = errors.New("project directory not found")

// ProjectSlug converts an absolute working directory into the directory
// name Claude Code uses under its projects root: /home/u/proj -> -home-u-proj.
func ProjectSlug(cwd string) string {
	return delimiter + slugBody(cwd)
}

func slugBody(cwd string) string {
	s := strings.ReplaceAll(filepath.ToSlash(cwd), "/", delimiter)
	return strings.TrimLeft(s, delimiter)
}

// ResolveProjectDir finds the session directory for cwd under root.
// An exact slug match wins; otherwise the first directory (by name) whose
// name contains the slug body is returned.
func ResolveProjectDir(root, cwd string) (string, error) {
	exact := filepath.Join(root, ProjectSlug(cwd))
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrProjectNotFound, root)
		}
		return "", fmt.Errorf("read %s: %w", root, err)
	}

	// os.ReadDir sorts by name, so the first match is stable across runs
	body := slugBody(cwd)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if strings.Contains(e.Name(), body) {
			return filepath.Join(root, e.Name()), nil
		}
	}

	return "", fmt.Errorf("%w: no entry for %s in %s", ErrProjectNotFound, cwd, root)
}

func SessionPath(dir, sessionID string) string {
	return filepath.Join(dir, sessionID+sessionExt)
}

type SessionFile struct {
	Path      string
	SessionID string
	Mtime     int64
	Size      int64
}

// ListSessions returns the session logs stored directly in a project dir.
func ListSessions(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []SessionFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != sessionExt {
			continue
		}
		if strings.Contains(e.Name(), "sessions-index") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed while listing
		}
		files = append(files, SessionFile{
			Path:      filepath.Join(dir, e.Name()),
			SessionID: strings.TrimSuffix(e.Name(), sessionExt),
			Mtime:     info.ModTime().Unix(),
			Size:      info.Size(),
		})
	}
	return files, nil
}
