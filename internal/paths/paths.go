// Package paths resolves filesystem locations used by the mdcheck CLI.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigHome returns the base directory for user configuration files.
// It honors XDG_CONFIG_HOME and falls back to ~/.config.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the mdcheck configuration directory.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), "mdcheck")
}

// WorkspaceRoot resolves the workspace root used for cross-reference checks.
// An explicit root wins; otherwise the current working directory is used.
// The returned path is always absolute.
func WorkspaceRoot(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	return os.Getwd()
}
