package files

import (
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".rorg"

	// HomeEnv overrides the settings directory.
	HomeEnv = "RORG_HOME"
)

// ResolveBasePath determines where rorg keeps its settings, defaulting to ~/.rorg.
// The location can be overridden by exporting RORG_HOME.
func ResolveBasePath() (string, error) {
	if override, ok := os.LookupEnv(HomeEnv); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return homedir.Expand(override)
		}
	}

	return homedir.Expand("~/" + DefaultDirName)
}
