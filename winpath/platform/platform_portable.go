//go:build !windows

package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/winpath/winpath/common"
)

// portableOps is the non-Windows fallback. It keeps the engine buildable
// and testable on POSIX hosts: resolution goes through the host resolver,
// 8.3 alias conversion is an identity (the concept does not exist off
// NTFS), and drive probes stat the drive root.
type portableOps struct{}

// New returns the portable implementation of Ops.
func New() Ops {
	return portableOps{}
}

func (portableOps) ResolveFullPath(path string) (string, error) {
	if path == "" {
		return "", common.NewPathError(common.KindEmptyPath, path, "")
	}
	// Windows-absolute shapes pass through untouched; the host resolver
	// would mangle them against a POSIX working directory.
	if isWindowsAbsolute(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", common.WrapPlatformError(path, "Abs", err)
	}
	return abs, nil
}

func (portableOps) LongPathName(path string) (string, error) {
	return path, nil
}

func (portableOps) ShortPathName(path string) (string, error) {
	return path, nil
}

func (portableOps) DriveExists(letter byte) bool {
	_, err := os.Stat(drivePath(letter))
	return err == nil
}

func isWindowsAbsolute(path string) bool {
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	if len(path) >= 2 && path[1] == ':' {
		c := path[0]
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	return false
}
