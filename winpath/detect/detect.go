// Package detect classifies raw path strings into their source format:
// native DOS, WSL mounts, Cygwin mounts, UNC/extended-length, Git Bash
// roots, and Git-Bash-mangled installation paths. Classification never
// fails; shapes that cannot be placed map to Unknown or Relative and the
// normalizer decides what to do with them.
package detect

import (
	"os"
	"strings"

	internal "github.com/ZanzyTHEbar/winpath/winpath"

	"github.com/armon/go-radix"
)

// Format identifies the convention a raw path string was written in.
type Format int

const (
	// FormatDos - C:\Users\david
	FormatDos Format = iota
	// FormatDosForwardSlash - C:/Users/david
	FormatDosForwardSlash
	// FormatWsl - /mnt/c/users/david
	FormatWsl
	// FormatCygwin - /cygdrive/c/users/david
	FormatCygwin
	// FormatUnc - \\?\C:\Users, \\?\UNC\server\share, \\server\share
	FormatUnc
	// FormatGitBash - /c/users/david (single-letter root)
	FormatGitBash
	// FormatGitBashMangled - C:\Program Files\Git\mnt\c\users\david
	FormatGitBashMangled
	// FormatRelative - no drive or mount information
	FormatRelative
	// FormatUnknown - rooted but unclassifiable
	FormatUnknown
)

// String returns the stable name of the format.
func (f Format) String() string {
	switch f {
	case FormatDos:
		return "Dos"
	case FormatDosForwardSlash:
		return "DosForwardSlash"
	case FormatWsl:
		return "Wsl"
	case FormatCygwin:
		return "Cygwin"
	case FormatUnc:
		return "Unc"
	case FormatGitBash:
		return "GitBash"
	case FormatGitBashMangled:
		return "GitBashMangled"
	case FormatRelative:
		return "Relative"
	case FormatUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// IsAbsolute reports whether the format carries drive or share information.
func (f Format) IsAbsolute() bool {
	switch f {
	case FormatDos, FormatDosForwardSlash, FormatWsl, FormatCygwin, FormatUnc, FormatGitBash, FormatGitBashMangled:
		return true
	default:
		return false
	}
}

// mangledPrefixes holds the known Git installation roots keyed by their
// case-folded, backslash-normalized form for longest-prefix matching.
var mangledPrefixes = buildMangledPrefixIndex()

func buildMangledPrefixIndex() *radix.Tree {
	tree := radix.New()
	for _, prefix := range internal.GitBashInstallPrefixes {
		tree.Insert(foldPath(prefix), prefix)
	}
	return tree
}

// foldPath lowercases ASCII letters and rewrites forward slashes to
// backslashes without changing the byte length, so indexes computed on the
// folded string remain valid on the original.
func foldPath(path string) string {
	b := []byte(path)
	for i, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		case c == '/':
			b[i] = '\\'
		}
	}
	return string(b)
}

// Detect classifies a raw path string. Session environment markers are
// consulted only to break the rooted single-letter ambiguity; prefix-based
// heuristics always win.
func Detect(path string) Format {
	return DetectWithEnv(path, os.LookupEnv)
}

// DetectWithEnv is Detect with the environment lookup injected, for tests
// and for hosts that snapshot their environment.
func DetectWithEnv(path string, lookupEnv func(string) (string, bool)) Format {
	if path == "" {
		return FormatUnknown
	}

	if format, ok := detectByPrefix(path); ok {
		return format
	}

	if format, ok := detectDos(path); ok {
		return format
	}

	if strings.HasPrefix(path, "/") {
		return detectRooted(path, lookupEnv)
	}

	return FormatRelative
}

// detectByPrefix handles the unambiguous prefix-anchored formats. The
// mangled check runs before the DOS check because mangled paths begin with
// a drive letter and would otherwise classify as DOS.
func detectByPrefix(path string) (Format, bool) {
	if strings.HasPrefix(path, `\\`) {
		return FormatUnc, true
	}

	if _, ok := MangledTail(path); ok {
		return FormatGitBashMangled, true
	}

	if strings.HasPrefix(path, internal.WSLMountPrefix) {
		return FormatWsl, true
	}

	if strings.HasPrefix(path, internal.CygwinDrivePrefix) {
		return FormatCygwin, true
	}

	return FormatUnknown, false
}

// detectDos matches <letter>: with either separator (or none, as in
// "C:file.txt", which DOS treats as drive-relative).
func detectDos(path string) (Format, bool) {
	if len(path) < 2 || !isASCIIAlpha(path[0]) || path[1] != ':' {
		return FormatUnknown, false
	}
	if len(path) > 2 && path[2] == '/' {
		return FormatDosForwardSlash, true
	}
	return FormatDos, true
}

// detectRooted classifies paths that start with "/" but match no mount
// prefix. A single-letter root is the Git Bash drive shape; the session
// environment breaks the tie with a plain POSIX path.
func detectRooted(path string, lookupEnv func(string) (string, bool)) Format {
	trimmed := strings.TrimLeft(path, "/")
	if len(trimmed) >= 1 && isASCIIAlpha(trimmed[0]) && (len(trimmed) == 1 || trimmed[1] == '/') {
		if _, inWSL := lookupEnv("WSL_DISTRO_NAME"); inWSL {
			// Inside WSL a rooted /c/... is a real POSIX directory, not a
			// drive mount.
			return FormatUnknown
		}
		if _, inWSL := lookupEnv("WSL_INTEROP"); inWSL {
			return FormatUnknown
		}
		return FormatGitBash
	}
	return FormatUnknown
}

// MangledTail strips a known Git installation prefix plus its glued
// "\mnt\" (or "/mnt/") segment, returning the remainder starting at the
// drive letter with the original casing preserved. ok is false for
// anything that does not match the table exactly.
func MangledTail(path string) (string, bool) {
	folded := foldPath(path)

	prefix, _, found := mangledPrefixes.LongestPrefix(folded)
	if !found {
		return "", false
	}

	rest := folded[len(prefix):]
	if !strings.HasPrefix(rest, `\mnt\`) {
		return "", false
	}

	return path[len(prefix)+len(`\mnt\`):], true
}

// ExtractDriveLetter recovers the uppercase drive letter for formats that
// carry one. ok is false when the format has no drive or the shape is too
// short to hold one.
func ExtractDriveLetter(path string, format Format) (byte, bool) {
	switch format {
	case FormatDos, FormatDosForwardSlash:
		if len(path) >= 2 && isASCIIAlpha(path[0]) && path[1] == ':' {
			return upperASCII(path[0]), true
		}
	case FormatUnc:
		rest, ok := strings.CutPrefix(path, internal.UNCPrefix)
		if ok && len(rest) >= 2 && isASCIIAlpha(rest[0]) && rest[1] == ':' {
			return upperASCII(rest[0]), true
		}
	case FormatWsl:
		return driveAfterPrefix(path, internal.WSLMountPrefix)
	case FormatCygwin:
		return driveAfterPrefix(path, internal.CygwinDrivePrefix)
	case FormatGitBash:
		trimmed := strings.TrimLeft(path, "/")
		if len(trimmed) >= 1 && isASCIIAlpha(trimmed[0]) && (len(trimmed) == 1 || trimmed[1] == '/') {
			return upperASCII(trimmed[0]), true
		}
	case FormatGitBashMangled:
		if tail, ok := MangledTail(path); ok && len(tail) >= 1 && isASCIIAlpha(tail[0]) {
			return upperASCII(tail[0]), true
		}
	}
	return 0, false
}

func driveAfterPrefix(path, prefix string) (byte, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || len(rest) == 0 || !isASCIIAlpha(rest[0]) {
		return 0, false
	}
	if len(rest) > 1 && rest[1] != '/' {
		return 0, false
	}
	return upperASCII(rest[0]), true
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
