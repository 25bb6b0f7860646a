package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references, so database and log paths can be written the same way
// in flags, SALES_ variables and config.yaml. A path whose ~ cannot be
// resolved keeps it.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	return os.ExpandEnv(expandHome(path))
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
