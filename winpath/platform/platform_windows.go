//go:build windows

package platform

import (
	"fmt"
	"log/slog"

	"github.com/ZanzyTHEbar/winpath/winpath/common"

	"golang.org/x/sys/windows"
)

type windowsOps struct{}

// New returns the native Windows implementation of Ops.
func New() Ops {
	return windowsOps{}
}

// ResolveFullPath wraps GetFullPathNameW.
func (windowsOps) ResolveFullPath(path string) (string, error) {
	return fillWidePath(path, "GetFullPathNameW", func(src *uint16, buf []uint16) (uint32, error) {
		if len(buf) == 0 {
			return windows.GetFullPathName(src, 0, nil, nil)
		}
		var filePart *uint16
		return windows.GetFullPathName(src, uint32(len(buf)), &buf[0], &filePart)
	})
}

// LongPathName wraps GetLongPathNameW.
func (windowsOps) LongPathName(path string) (string, error) {
	return fillWidePath(path, "GetLongPathNameW", func(src *uint16, buf []uint16) (uint32, error) {
		if len(buf) == 0 {
			return windows.GetLongPathName(src, nil, 0)
		}
		return windows.GetLongPathName(src, &buf[0], uint32(len(buf)))
	})
}

// ShortPathName wraps GetShortPathNameW.
func (windowsOps) ShortPathName(path string) (string, error) {
	return fillWidePath(path, "GetShortPathNameW", func(src *uint16, buf []uint16) (uint32, error) {
		if len(buf) == 0 {
			return windows.GetShortPathName(src, nil, 0)
		}
		return windows.GetShortPathName(src, &buf[0], uint32(len(buf)))
	})
}

// DriveExists probes <letter>:\ via GetFileAttributesW. The probe is the
// same for every letter; no letter bypasses it.
func (windowsOps) DriveExists(letter byte) bool {
	wide, err := windows.UTF16PtrFromString(drivePath(letter))
	if err != nil {
		return false
	}
	_, err = windows.GetFileAttributes(wide)
	return err == nil
}

// fillWidePath runs a measure/fill pair against a UTF-16 Windows API.
// call(src, nil-buffer) must return the required size in UTF-16 units
// including the terminator; call(src, buf) must return the number of units
// written excluding the terminator. A fill report at or beyond the
// allocated size is rejected before any conversion happens.
func fillWidePath(path, op string, call func(src *uint16, buf []uint16) (uint32, error)) (string, error) {
	src, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", common.NewPathError(common.KindInvalidComponent, path, "embedded NUL byte")
	}

	required, err := call(src, nil)
	if err != nil {
		return "", common.WrapPlatformError(path, op, err)
	}
	if required == 0 {
		return "", common.WrapPlatformError(path, op, fmt.Errorf("zero-length size report"))
	}

	buf := make([]uint16, required)
	written, err := call(src, buf)
	if err != nil {
		return "", common.WrapPlatformError(path, op, err)
	}
	if written >= uint32(len(buf)) {
		// The second call claims more output than the buffer holds. The
		// path may have changed between calls or the API misbehaved;
		// either way the buffer contents cannot be trusted.
		slog.Error("platform size report exceeds allocation",
			"op", op,
			"reported", written,
			"allocated", len(buf))
		return "", common.NewPathError(common.KindPlatformError, path,
			fmt.Sprintf("%s reported %d units for a %d-unit buffer", op, written, len(buf)))
	}

	return windows.UTF16ToString(buf[:written]), nil
}
