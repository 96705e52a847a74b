// Package paths resolves where the CLI keeps its settings, engines and logs.
// Linux and macOS follow XDG-style locations under the home directory,
// Windows uses %APPDATA% and %LOCALAPPDATA%.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "apimgr"
	projectName = "websearch"
)

// goos is used for testing - allows overriding runtime.GOOS
var goos = runtime.GOOS

// Dirs holds the resolved directories for one invocation
type Dirs struct {
	Config string
	Log    string
}

// Get resolves directories from the user's home directory and environment
func Get() (*Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return ForHome(home, os.Getenv), nil
}

// ForHome resolves directories relative to home, reading Windows locations
// through getenv.
func ForHome(home string, getenv func(string) string) *Dirs {
	if goos == "windows" {
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Dirs{
			Config: filepath.Join(appData, projectOrg, projectName),
			Log:    filepath.Join(localAppData, projectOrg, projectName, "log"),
		}
	}

	config := filepath.Join(home, ".config", projectOrg, projectName)
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		config = filepath.Join(xdg, projectOrg, projectName)
	}
	return &Dirs{
		Config: config,
		Log:    filepath.Join(home, ".local", "log", projectOrg, projectName),
	}
}

// ConfigFile returns the CLI settings file path
func (d *Dirs) ConfigFile() string {
	return filepath.Join(d.Config, "cli.yml")
}

// EnginesFile returns the default engines catalog path
func (d *Dirs) EnginesFile() string {
	return filepath.Join(d.Config, "engines.yml")
}

// LogFile returns the CLI log file path
func (d *Dirs) LogFile() string {
	return filepath.Join(d.Log, "cli.log")
}

// EnsureDirs creates all CLI directories with owner-only permissions
func (d *Dirs) EnsureDirs() error {
	for _, dir := range []string{d.Config, d.Log} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// Expand replaces a leading ~ with home
func Expand(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolveConfigPath resolves the --config flag to a settings file path.
// Relative paths are taken from the config directory and a missing
// extension defaults to .yml.
func (d *Dirs) ResolveConfigPath(flag, home string) string {
	if flag == "" {
		return d.ConfigFile()
	}

	flag = Expand(flag, home)
	if !filepath.IsAbs(flag) {
		flag = filepath.Join(d.Config, flag)
	}
	return addExtIfNeeded(flag)
}

// addExtIfNeeded adds .yml extension if no extension provided
func addExtIfNeeded(path string) string {
	if filepath.Ext(path) != "" {
		return path
	}

	ymlPath := path + ".yml"
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}
	yamlPath := path + ".yaml"
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	// Default to .yml for new files
	return ymlPath
}
