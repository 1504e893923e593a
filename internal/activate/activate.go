// Package activate owns the generated activation script.
package activate

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
)

//go:embed activate.sh
var script []byte

// Content returns the activation script exactly as it is written to disk.
func Content() []byte {
	return bytes.Clone(script)
}

// Write replaces the file at path with the activation script.
// The file is truncated, never merged; executable adds the owner/group/other execute bits.
func Write(path string, executable bool) error {
	if err := os.WriteFile(path, script, 0o644); err != nil {
		return fmt.Errorf("failed to write activation script: %w", err)
	}
	if !executable {
		return nil
	}
	// WriteFile keeps the mode of an existing file, so chmod unconditionally.
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to mark activation script executable: %w", err)
	}
	return nil
}

// Exists reports whether the activation script is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
