package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mattrack/internal/errs"
	"mattrack/internal/ports"
)

// Filesystem stores attachment payloads as plain files under a root
// directory. Names are flat (no subdirectories); path traversal is rejected.
type Filesystem struct {
	root string
}

var _ ports.FileStore = (*Filesystem)(nil)

// NewFilesystem creates the root directory if needed.
func NewFilesystem(root string) (*Filesystem, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("file store root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create file store root %q", root)
	}
	return &Filesystem{root: root}, nil
}

func (s *Filesystem) pathFor(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", errors.New("stored name is required")
	}
	if strings.Contains(clean, "..") || strings.ContainsAny(clean, "/\\") {
		return "", fmt.Errorf("invalid stored name %q", name)
	}
	return filepath.Join(s.root, clean), nil
}

// Save writes data under name. An existing name is an error: stored versions
// are immutable and never overwritten.
func (s *Filesystem) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	path, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("stored file %q already exists", name)
	}

	// Write to a temp file first, then rename into place, so a reader never
	// observes a partial payload.
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return errs.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "write payload")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.Wrapf(err, "store file %q", name)
	}
	return nil
}

func (s *Filesystem) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	path, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read stored file %q", name)
	}
	return data, nil
}
