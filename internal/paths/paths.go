// Package paths resolves where venom keeps its files.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir       = ".venom"
	jsonFile     = "todo.json"
	sqliteFile   = "todo.db"
	configName   = "config.yaml"
	tracesName   = "traces.jsonl"
	debugLogName = "debug.log"
)

// Home returns the user's home directory, or "." when it cannot be found.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// fileFor returns the default file name for a storage backend.
func fileFor(backend string) string {
	if backend == "sqlite" {
		return sqliteFile
	}
	return jsonFile
}

// DefaultSavePath returns ~/.venom/todo.json, or todo.db for the sqlite
// backend.
func DefaultSavePath(backend string) string {
	return filepath.Join(Home(), appDir, fileFor(backend))
}

// ConfigDir returns ~/.config/venom.
func ConfigDir() string {
	return filepath.Join(Home(), ".config", "venom")
}

// DefaultConfigPath returns ~/.config/venom/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), configName)
}

// LocalConfigPath returns .venom/config.yaml under dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, appDir, configName)
}

// DefaultTracesPath returns ~/.config/venom/traces/traces.jsonl.
func DefaultTracesPath() string {
	return filepath.Join(ConfigDir(), "traces", tracesName)
}

// DefaultLogPath returns ~/.config/venom/debug.log.
func DefaultLogPath() string {
	return filepath.Join(ConfigDir(), debugLogName)
}

// Expand replaces a leading ~ with the home directory.
func Expand(path string) string {
	if path == "~" {
		return Home()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(Home(), path[2:])
	}
	return path
}

// ResolveSavePath turns user input into the file the backend should use.
//
// Input normalization:
//   - "" -> ~/.venom/todo.json (todo.db for sqlite)
//   - "~/notes/todo.json" -> "$HOME/notes/todo.json"
//   - "/path/to/dir" (an existing directory) -> "/path/to/dir/todo.json"
func ResolveSavePath(path, backend string) string {
	if path == "" {
		return DefaultSavePath(backend)
	}
	path = filepath.Clean(Expand(path))
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, fileFor(backend))
	}
	return path
}
