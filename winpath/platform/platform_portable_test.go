//go:build !windows

package platform

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/winpath/winpath/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableResolveFullPath(t *testing.T) {
	ops := New()

	// Windows-absolute input passes through untouched; the host has no
	// authority over another system's drive layout.
	for _, path := range []string{`C:\Users\david`, "D:/data", `\\server\share`, `\\?\C:\x`} {
		resolved, err := ops.ResolveFullPath(path)
		require.NoError(t, err, "path: %q", path)
		assert.Equal(t, path, resolved)
	}

	// Relative input resolves against the working directory.
	resolved, err := ops.ResolveFullPath("some/relative/path")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved), "got: %q", resolved)

	_, err = ops.ResolveFullPath("")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindEmptyPath))
}

func TestPortableNameQueriesAreIdentity(t *testing.T) {
	ops := New()

	long, err := ops.LongPathName(`C:\PROGRA~1`)
	require.NoError(t, err)
	assert.Equal(t, `C:\PROGRA~1`, long)

	short, err := ops.ShortPathName(`C:\Program Files`)
	require.NoError(t, err)
	assert.Equal(t, `C:\Program Files`, short)
}

func TestPortableDriveExists(t *testing.T) {
	ops := New()
	// A drive-root probe on a POSIX host hits a path like "Q:\" relative
	// to the working directory, which does not exist.
	assert.False(t, ops.DriveExists('Q'))
}
