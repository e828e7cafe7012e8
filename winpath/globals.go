package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultConfigPath is the default path to the config file
	DefaultAppName    = "winpath"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)
)

const (
	// MaxPath is the legacy Windows path length ceiling. Canonical paths
	// longer than this need the extended-length prefix.
	MaxPath = 260

	// ExtendedMaxPath is the absolute ceiling for extended-length paths.
	ExtendedMaxPath = 32767

	// MaxComponentLength is the per-component name limit on NTFS.
	MaxComponentLength = 255

	// UNCPrefix marks an extended-length path: \\?\C:\...
	UNCPrefix = `\\?\`

	// UNCNetworkPrefix marks an extended-length network path: \\?\UNC\server\share\...
	UNCNetworkPrefix = `\\?\UNC\`

	// WSLMountPrefix is the WSL drive mount root.
	WSLMountPrefix = "/mnt/"

	// CygwinDrivePrefix is the Cygwin drive mount root.
	CygwinDrivePrefix = "/cygdrive/"

	// DefaultCacheCapacity is the default number of normalization results
	// retained by the facade's LRU cache.
	DefaultCacheCapacity = 1024
)

// GitBashInstallPrefixes are the known Git for Windows installation roots
// that Git Bash glues onto translated mount paths. Mangled-path detection
// matches these exactly and nothing else.
var GitBashInstallPrefixes = []string{
	`C:\Program Files\Git`,
	`C:\Program Files (x86)\Git`,
	`C:\Git`,
	`C:\Tools\Git`,
}

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use tmp directory
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
