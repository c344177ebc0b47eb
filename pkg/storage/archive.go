package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archive keeps copies of generated documents on disk under a single base
// directory. File names are always resolved relative to the base and must
// not escape it.
type Archive struct {
	baseDir string
}

// NewArchive ensures the base directory exists and returns a handle.
func NewArchive(baseDir string) (*Archive, error) {
	if baseDir == "" {
		baseDir = "./archive"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archive{baseDir: baseDir}, nil
}

// Save writes the document under the base directory.
func (a *Archive) Save(name string, data []byte) error {
	path, err := a.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write archived document: %w", err)
	}
	return nil
}

// Read returns the content of an archived document.
func (a *Archive) Read(name string) ([]byte, error) {
	path, err := a.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archived document: %w", err)
	}
	return data, nil
}

// Remove deletes an archived document. A missing file is not an error.
func (a *Archive) Remove(name string) error {
	path, err := a.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove archived document: %w", err)
	}
	return nil
}

// Prune deletes documents older than maxAge and returns their names.
func (a *Archive) Prune(maxAge time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-maxAge)
	pruned := make([]string, 0)
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		return nil, fmt.Errorf("scan archive: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat archived document: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := a.Remove(entry.Name()); err != nil {
			return nil, fmt.Errorf("prune archived document: %w", err)
		}
		pruned = append(pruned, entry.Name())
	}
	return pruned, nil
}

func (a *Archive) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid archive name %q", name)
	}
	return filepath.Join(a.baseDir, clean), nil
}
