package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnv makes rooted-shape detection deterministic regardless of the host
// session.
func noEnv(string) (string, bool) {
	return "", false
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Format
	}{
		{"DosBackslash", `C:\Users\david`, FormatDos},
		{"DosLowercaseDrive", `c:\temp`, FormatDos},
		{"DosBareDrive", "C:", FormatDos},
		{"DosDriveRelative", "C:file.txt", FormatDos},
		{"DosForwardSlash", "C:/Users/david", FormatDosForwardSlash},
		{"DosForwardSlashOther", "E:/temp", FormatDosForwardSlash},
		{"Wsl", "/mnt/c/users/david", FormatWsl},
		{"WslUppercaseDrive", "/mnt/D/temp", FormatWsl},
		{"WslBareMount", "/mnt/", FormatWsl},
		{"Cygwin", "/cygdrive/c/users", FormatCygwin},
		{"CygwinOtherDrive", "/cygdrive/f/data", FormatCygwin},
		{"UncExtended", `\\?\C:\Users`, FormatUnc},
		{"UncExtendedNetwork", `\\?\UNC\server\share`, FormatUnc},
		{"UncNetwork", `\\server\share\file`, FormatUnc},
		{"GitBashMangled", `C:\Program Files\Git\mnt\c\users\david`, FormatGitBashMangled},
		{"GitBashMangledForward", `C:\Program Files\Git/mnt/d/data`, FormatGitBashMangled},
		{"GitBashMangledCaseFolded", `c:\program files\git\mnt\c\x`, FormatGitBashMangled},
		{"GitBashMangledTools", `C:\Tools\Git\mnt\e\proj`, FormatGitBashMangled},
		{"NotMangledUnknownRoot", `C:\SomeOther\Git\mnt\c\x`, FormatDos},
		{"GitBashRoot", "/c/users/david", FormatGitBash},
		{"GitBashRootDouble", "//c/users/david", FormatGitBash},
		{"GitBashBareDrive", "/c", FormatGitBash},
		{"RootedNoDrive", "/usr/local/bin", FormatUnknown},
		{"RootedSlashOnly", "/", FormatUnknown},
		{"Relative", `Documents\file.txt`, FormatRelative},
		{"RelativeForward", "docs/readme.md", FormatRelative},
		{"RelativeDotDot", "../temp", FormatRelative},
		{"BareName", "file.txt", FormatRelative},
		{"Empty", "", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectWithEnv(tt.path, noEnv)
			assert.Equal(t, tt.want, got, "path: %q", tt.path)
		})
	}
}

func TestDetectEnvTieBreaker(t *testing.T) {
	msys := func(key string) (string, bool) {
		if key == "MSYSTEM" {
			return "MINGW64", true
		}
		return "", false
	}
	wsl := func(key string) (string, bool) {
		if key == "WSL_DISTRO_NAME" {
			return "Ubuntu", true
		}
		return "", false
	}

	// The rooted single-letter shape is Git Bash by default and inside an
	// MSYS session, but a plain POSIX directory inside WSL.
	assert.Equal(t, FormatGitBash, DetectWithEnv("/c/users", noEnv))
	assert.Equal(t, FormatGitBash, DetectWithEnv("/c/users", msys))
	assert.Equal(t, FormatUnknown, DetectWithEnv("/c/users", wsl))

	// Prefix heuristics always win over the environment.
	assert.Equal(t, FormatWsl, DetectWithEnv("/mnt/c/users", wsl))
	assert.Equal(t, FormatWsl, DetectWithEnv("/mnt/c/users", msys))
}

func TestExtractDriveLetter(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		format Format
		want   byte
		ok     bool
	}{
		{"Dos", `C:\Users`, FormatDos, 'C', true},
		{"DosLowercase", "c:/temp", FormatDosForwardSlash, 'C', true},
		{"Wsl", "/mnt/d/data", FormatWsl, 'D', true},
		{"WslNoDrive", "/mnt/", FormatWsl, 0, false},
		{"WslMultiChar", "/mnt/cd/x", FormatWsl, 0, false},
		{"Cygwin", "/cygdrive/f/temp", FormatCygwin, 'F', true},
		{"UncExtended", `\\?\G:\data`, FormatUnc, 'G', true},
		{"UncNetwork", `\\server\share`, FormatUnc, 0, false},
		{"GitBash", "/h/users", FormatGitBash, 'H', true},
		{"GitBashDouble", "//e/tmp", FormatGitBash, 'E', true},
		{"Mangled", `C:\Program Files\Git\mnt\c\users`, FormatGitBashMangled, 'C', true},
		{"Relative", "relative/path", FormatRelative, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDriveLetter(tt.path, tt.format)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMangledTail(t *testing.T) {
	tail, ok := MangledTail(`C:\Program Files\Git\mnt\c\users\david`)
	require.True(t, ok)
	assert.Equal(t, `c\users\david`, tail)

	// Forward-slash variant with preserved casing after the prefix.
	tail, ok = MangledTail(`C:\Program Files (x86)\Git/mnt/d/Data`)
	require.True(t, ok)
	assert.Equal(t, "d/Data", tail)

	// A prefix from the table without the glued mount segment is not
	// mangled.
	_, ok = MangledTail(`C:\Program Files\Git\usr\bin`)
	assert.False(t, ok)

	// Unknown installation roots never match.
	_, ok = MangledTail(`D:\Git\mnt\c\users`)
	assert.False(t, ok)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "Dos", FormatDos.String())
	assert.Equal(t, "GitBashMangled", FormatGitBashMangled.String())
	assert.Equal(t, "Unknown", FormatUnknown.String())
	assert.True(t, FormatWsl.IsAbsolute())
	assert.False(t, FormatRelative.IsAbsolute())
}
