// Package sandbox provides the planner agent's single "run command" tool
// surface: a subprocess runner with allowlisted environment, capped
// parallel stream readers, process-group teardown, and workspace path
// containment for the file read/write tools.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is an ephemeral scratch directory one Planner–Executor–Repair
// Loop run or Connector Builder session operates in. Every tool-facing
// file path is resolved and checked against its root before use.
type Workspace struct {
	root string
}

// NewWorkspace creates a fresh workspace directory under parent (typically
// os.TempDir()), returning a Workspace rooted at it.
func NewWorkspace(parent string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "orcheo-workspace-")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{root: dir}, nil
}

// Root returns the workspace's absolute root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Resolve resolves a tool-supplied path against the workspace root and
// verifies the result is contained within it, rejecting any attempt to
// escape via ".." or an absolute path outside the root. The check is
// lexical: symlinks are not resolved, so a symlink inside the root that
// points outside it is not rejected.
func (w *Workspace) Resolve(path string) (string, error) {
	joined := path
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(w.root, joined)
	}

	resolved, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}

	rootWithSep := strings.TrimRight(w.root, string(filepath.Separator)) + string(filepath.Separator)
	if resolved != strings.TrimRight(w.root, string(filepath.Separator)) && !strings.HasPrefix(resolved, rootWithSep) {
		return "", fmt.Errorf("path %q escapes workspace root %q", path, w.root)
	}

	return resolved, nil
}

// Cleanup removes the workspace directory and everything in it.
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.root)
}
