package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CheckWritable checks if a path is writable
func CheckWritable(fs afero.Fs, path string) error {
	testFile := filepath.Join(path, ".gitpilot-write-test")
	f, err := fs.Create(testFile)
	if err != nil {
		return fmt.Errorf("path not writable: %w", err)
	}
	f.Close()
	fs.Remove(testFile)
	return nil
}

// EnsureDir ensures a directory exists with the given permissions
func EnsureDir(fs afero.Fs, path string, perm os.FileMode) error {
	if err := fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}
	return nil
}

// IsDir checks if a path is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// TopLevelEntries returns the names directly inside dir as a set
func TopLevelEntries(fs afero.Fs, dir string) (map[string]bool, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	entries := make(map[string]bool, len(infos))
	for _, info := range infos {
		entries[info.Name()] = true
	}
	return entries, nil
}

// NewestDir returns the path of the most recently modified directory
// directly inside dir. Ties keep the first name in lexical order.
func NewestDir(fs afero.Fs, dir string) (string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	var newest os.FileInfo
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if newest == nil || info.ModTime().After(newest.ModTime()) {
			newest = info
		}
	}

	if newest == nil {
		return "", fmt.Errorf("no directory found in %s", dir)
	}

	return filepath.Join(dir, newest.Name()), nil
}
