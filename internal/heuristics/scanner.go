package heuristics

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/spf13/afero"
)

// FindRunnables walks root recursively and returns every file whose
// extension is runnable on platform, in lexical walk order
func FindRunnables(fs afero.Fs, root string, platform core.Platform) ([]string, error) {
	exts := RunnableExtensions(platform)

	return walkFiles(fs, root, func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, allowed := range exts {
			if ext == allowed {
				return true
			}
		}
		return false
	})
}

// FindManifests walks root recursively and returns every file named
// requirements.txt, compared case-insensitively. Hidden and vendored
// directories are not skipped.
func FindManifests(fs afero.Fs, root string) ([]string, error) {
	return walkFiles(fs, root, func(name string) bool {
		return strings.ToLower(name) == ManifestName
	})
}

func walkFiles(fs afero.Fs, root string, match func(name string) bool) ([]string, error) {
	var found []string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries below the root are skipped
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if match(info.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}
