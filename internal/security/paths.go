package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateExtractPath prevents directory traversal attacks (Zip Slip vulnerability)
// Ensures that the extracted path does not escape the target directory
func ValidateExtractPath(targetDir, extractedPath string) error {
	if strings.Contains(extractedPath, "\x00") {
		return fmt.Errorf("path contains null bytes: %q", extractedPath)
	}

	// Archive entries always use forward slashes
	cleanPath := filepath.Clean(filepath.FromSlash(extractedPath))

	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path contains ..: %s", extractedPath)
	}

	if filepath.IsAbs(cleanPath) || strings.HasPrefix(extractedPath, "/") || filepath.VolumeName(cleanPath) != "" {
		return fmt.Errorf("absolute path not allowed: %s", extractedPath)
	}

	destPath := filepath.Join(targetDir, cleanPath)

	cleanDest, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve target directory: %w", err)
	}

	cleanTarget, err := filepath.Abs(destPath)
	if err != nil {
		return fmt.Errorf("failed to resolve destination path: %w", err)
	}

	if !strings.HasPrefix(cleanTarget, cleanDest+string(filepath.Separator)) &&
		cleanTarget != cleanDest {
		return fmt.Errorf("path escapes destination directory: %s", extractedPath)
	}

	return nil
}
