// Package runtime locates the files wrench keeps between runs.
package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "wrench"

	TokenFileName       = "session_token.json"
	PreferencesFileName = "preferences.yaml"
	LogFileName         = "wrench.log"
)

// File returns a path in the runtime directory, which does not survive reboot.
func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// StateFile returns a path for state that should survive restarts.
func StateFile(filename string) (string, error) {
	return xdg.StateFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// ConfigFile returns a path in the user's config directory.
func ConfigFile(filename string) (string, error) {
	return xdg.ConfigFile(fmt.Sprintf("%s/%s", XDGName, filename))
}
