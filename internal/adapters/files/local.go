package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploaded files to a directory on local disk.
// Saved files are addressable at urlPrefix + "/" + relPath.
type LocalStore struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStore creates a store rooted at baseDir.
// PRE: baseDir is a writable directory path
// POST: Returns a ready-to-use store; baseDir is created lazily on first Save
func NewLocalStore(baseDir, urlPrefix string) *LocalStore {
	return &LocalStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Save writes src to baseDir/relPath and returns the serving URL.
// PRE: relPath is a clean relative path; src is a valid io.Reader
// POST: File exists at baseDir/relPath; returns urlPrefix/relPath
func (ls *LocalStore) Save(_ context.Context, relPath string, src io.Reader) (string, error) {
	if err := validRelPath(relPath); err != nil {
		return "", err
	}
	fullPath := filepath.Join(ls.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	return ls.urlPrefix + "/" + relPath, nil
}

// Open returns a reader for a previously saved file.
// PRE: relPath is a clean relative path
// POST: Returns an open file; caller must close it
func (ls *LocalStore) Open(_ context.Context, relPath string) (io.ReadCloser, error) {
	if err := validRelPath(relPath); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(ls.baseDir, filepath.FromSlash(relPath)))
}

// Delete removes a previously saved file. Missing files are not an error.
// PRE: relPath is a clean relative path
// POST: File no longer exists at baseDir/relPath
func (ls *LocalStore) Delete(_ context.Context, relPath string) error {
	if err := validRelPath(relPath); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(ls.baseDir, filepath.FromSlash(relPath)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// validRelPath rejects empty, absolute, and parent-escaping paths.
func validRelPath(relPath string) error {
	if relPath == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(relPath, "/") || strings.Contains(relPath, "..") {
		return fmt.Errorf("invalid path: %s", relPath)
	}
	return nil
}
