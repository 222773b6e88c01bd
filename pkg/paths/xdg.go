// Package paths provides XDG-compliant path resolution for ristate.
//
// Resolution order:
// 1. RISTATE_HOME (portable root) → $RISTATE_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/ristate
// 3. Platform defaults → ~/.config/ristate, ~/.local/state/ristate
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const appName = "ristate"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("RISTATE_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("RISTATE_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the ristate configuration directory.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	if os.Getenv("RISTATE_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// StateDir returns the ristate state directory. Only logs live here.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	if os.Getenv("RISTATE_HOME") != "" {
		return base
	}
	return filepath.Join(base, appName)
}

// LogFilePath returns the default log file for a component on the given day.
func LogFilePath(component string, day time.Time) string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs", fmt.Sprintf("%s-%s.log", component, day.Format("2006-01-02")))
}
