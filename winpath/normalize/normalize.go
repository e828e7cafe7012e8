// Package normalize implements the core path normalization algorithm:
// format-specific prefix extraction, drive validation, component
// resolution, reassembly, and long-path prefixing. It is pure string work;
// the OS is only consulted through the injected hooks in Options.
package normalize

import (
	"strings"
	"unicode/utf8"

	internal "github.com/ZanzyTHEbar/winpath/winpath"
	"github.com/ZanzyTHEbar/winpath/winpath/common"
	"github.com/ZanzyTHEbar/winpath/winpath/detect"

	"golang.org/x/text/unicode/norm"
)

// Options carries the per-call configuration. The existence check and the
// relative-path resolver are injected so tests can run without real drives
// and so every drive letter goes through the identical code path.
type Options struct {
	// ValidateDriveExistence enables the OS existence probe for the
	// extracted drive letter.
	ValidateDriveExistence bool

	// DriveExists answers the existence probe. Ignored unless
	// ValidateDriveExistence is set.
	DriveExists func(letter byte) bool

	// ResolveFullPath resolves relative input to an absolute path.
	// Relative input fails with UnsupportedFormat when nil.
	ResolveFullPath func(path string) (string, error)

	// UnicodeNFC applies canonical composition to the canonical path.
	UnicodeNFC bool
}

// Result is the immutable outcome of a successful normalization.
type Result struct {
	// Path is the canonical form: absolute, backslash-separated, uppercase
	// drive letter or validated UNC prefix.
	Path string
	// Format is the detected source format of the raw input.
	Format detect.Format
	// LongPrefixApplied reports that Path carries the extended-length prefix.
	LongPrefixApplied bool
	// FromCache reports that the result was served from the facade cache.
	FromCache bool
}

// reservedNames are the DOS device names that cannot appear as a path
// component, with or without an extension.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Normalize converts raw input of a known format into its canonical
// Windows form. Malformed input is data: every failure surfaces as a
// *common.PathError, never a panic.
func Normalize(path string, format detect.Format, opts Options) (Result, error) {
	if path == "" {
		return Result{}, common.NewPathError(common.KindEmptyPath, path, "")
	}

	switch format {
	case detect.FormatDos, detect.FormatDosForwardSlash:
		if len(path) < 2 || path[1] != ':' {
			return Result{}, common.NewPathError(common.KindUnsupportedFormat, path, "drive path carries no drive marker")
		}
		return normalizeDrive(path, format, path[0], path[2:], false, opts)

	case detect.FormatWsl:
		return normalizeMounted(path, format, internal.WSLMountPrefix, opts)

	case detect.FormatCygwin:
		return normalizeMounted(path, format, internal.CygwinDrivePrefix, opts)

	case detect.FormatGitBash:
		return normalizeGitBashRoot(path, opts)

	case detect.FormatGitBashMangled:
		return normalizeMangled(path, opts)

	case detect.FormatUnc:
		return normalizeUNC(path, opts)

	case detect.FormatRelative:
		return normalizeRelative(path, opts)

	default:
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, path, "unclassifiable path shape")
	}
}

// normalizeDrive handles everything that reduces to <drive> + remainder.
// alreadyExtended marks input that arrived with the \\?\ prefix, which is
// preserved on output.
func normalizeDrive(raw string, format detect.Format, drive byte, remainder string, alreadyExtended bool, opts Options) (Result, error) {
	letter, err := validateDrive(raw, drive, opts)
	if err != nil {
		return Result{}, err
	}

	resolved, err := resolveComponents(raw, remainder)
	if err != nil {
		return Result{}, err
	}

	var b strings.Builder
	b.Grow(len(raw) + len(internal.UNCPrefix))
	b.WriteByte(letter)
	b.WriteString(`:\`)
	b.WriteString(strings.Join(resolved, `\`))

	return finish(raw, format, b.String(), alreadyExtended, opts)
}

// normalizeMounted strips a POSIX mount prefix (/mnt/ or /cygdrive/) and
// normalizes the remainder as a drive path.
func normalizeMounted(raw string, format detect.Format, prefix string, opts Options) (Result, error) {
	rest, ok := strings.CutPrefix(raw, prefix)
	if !ok || rest == "" {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "mount prefix carries no drive letter")
	}

	// The first segment must be exactly one character: the drive letter.
	if len(rest) > 1 && rest[1] != '/' && rest[1] != '\\' {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "mount root is not a single drive letter")
	}

	return normalizeDrive(raw, format, rest[0], rest[1:], false, opts)
}

// normalizeGitBashRoot handles the single-letter root shape /c/users.
func normalizeGitBashRoot(raw string, opts Options) (Result, error) {
	trimmed := strings.TrimLeft(raw, "/")
	if trimmed == "" {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "root carries no drive letter")
	}
	if len(trimmed) > 1 && trimmed[1] != '/' {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "root is not a single drive letter")
	}
	return normalizeDrive(raw, detect.FormatGitBash, trimmed[0], trimmed[1:], false, opts)
}

// normalizeMangled recovers the drive path glued under a known Git
// installation prefix. Anything that does not match the prefix table fails
// closed.
func normalizeMangled(raw string, opts Options) (Result, error) {
	tail, ok := detect.MangledTail(raw)
	if !ok || tail == "" {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "mangled shape does not match a known Git installation prefix")
	}
	if len(tail) > 1 && tail[1] != '/' && tail[1] != '\\' {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "mangled mount root is not a single drive letter")
	}
	return normalizeDrive(raw, detect.FormatGitBashMangled, tail[0], tail[1:], false, opts)
}

// normalizeUNC dispatches the three UNC shapes: extended drive paths,
// extended network paths, and plain network shares.
func normalizeUNC(raw string, opts Options) (Result, error) {
	if rest, ok := strings.CutPrefix(raw, internal.UNCNetworkPrefix); ok {
		return normalizeNetwork(raw, rest, true, opts)
	}

	if rest, ok := strings.CutPrefix(raw, internal.UNCPrefix); ok {
		if len(rest) < 2 || rest[1] != ':' {
			return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "extended-length prefix carries no drive")
		}
		return normalizeDrive(raw, detect.FormatUnc, rest[0], rest[2:], true, opts)
	}

	if rest, ok := strings.CutPrefix(raw, `\\`); ok {
		return normalizeNetwork(raw, rest, false, opts)
	}

	return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "malformed UNC marker")
}

// normalizeNetwork canonicalizes \\server\share\... with dot resolution
// scoped to the share root. extended marks input that arrived in the
// \\?\UNC\ form, which is preserved on output.
func normalizeNetwork(raw, rest string, extended bool, opts Options) (Result, error) {
	segments := splitSeparators(rest)
	if len(segments) < 2 {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "network path needs a server and a share")
	}

	server, share := segments[0], segments[1]
	if err := validateComponent(raw, server); err != nil {
		return Result{}, err
	}
	if err := validateComponent(raw, share); err != nil {
		return Result{}, err
	}

	resolved := make([]string, 0, len(segments)-2)
	for _, seg := range segments[2:] {
		switch seg {
		case ".":
		case "..":
			if len(resolved) == 0 {
				return Result{}, common.NewPathError(common.KindInvalidComponent, raw, `".." traverses above the share root`)
			}
			resolved = resolved[:len(resolved)-1]
		default:
			if err := validateComponent(raw, seg); err != nil {
				return Result{}, err
			}
			resolved = append(resolved, seg)
		}
	}

	var b strings.Builder
	b.Grow(len(raw) + len(internal.UNCNetworkPrefix))
	b.WriteString(`\\`)
	b.WriteString(server)
	b.WriteByte('\\')
	b.WriteString(share)
	if len(resolved) > 0 {
		b.WriteByte('\\')
		b.WriteString(strings.Join(resolved, `\`))
	}
	canonical := b.String()

	if len(canonical) > internal.ExtendedMaxPath {
		return Result{}, common.NewPathError(common.KindPathTooLong, raw, "exceeds the extended-length ceiling")
	}

	long := false
	if extended || len(canonical) > internal.MaxPath {
		canonical = internal.UNCNetworkPrefix + canonical[2:]
		long = true
	}

	canonical, err := composeNFC(raw, canonical, opts)
	if err != nil {
		return Result{}, err
	}

	return Result{Path: canonical, Format: detect.FormatUnc, LongPrefixApplied: long}, nil
}

// normalizeRelative resolves the input against the process working
// directory through the platform resolver, then normalizes the absolute
// result. The reported format stays Relative.
func normalizeRelative(raw string, opts Options) (Result, error) {
	if opts.ResolveFullPath == nil {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "no platform resolver for relative input")
	}

	resolved, err := opts.ResolveFullPath(raw)
	if err != nil {
		return Result{}, err
	}

	format := detect.Detect(resolved)
	if format == detect.FormatRelative || format == detect.FormatUnknown {
		return Result{}, common.NewPathError(common.KindUnsupportedFormat, raw, "platform resolver produced no absolute Windows path")
	}

	result, err := Normalize(resolved, format, opts)
	if err != nil {
		return Result{}, err
	}
	result.Format = detect.FormatRelative
	return result, nil
}

// validateDrive is the single validation path for every letter A-Z. The
// existence check is injected; no letter bypasses it.
func validateDrive(raw string, drive byte, opts Options) (byte, error) {
	if !isASCIIAlpha(drive) {
		return 0, common.NewPathError(common.KindInvalidDriveLetter, raw, "drive "+string(drive)+" is not a letter")
	}
	letter := upperASCII(drive)
	if opts.ValidateDriveExistence && opts.DriveExists != nil && !opts.DriveExists(letter) {
		return 0, common.NewPathError(common.KindInvalidDriveLetter, raw, "drive "+string(letter)+": does not exist")
	}
	return letter, nil
}

// resolveComponents splits the remainder on both separators and resolves
// dot components in a single left-to-right pass. ".." at the drive root is
// an error, never clamped.
func resolveComponents(raw, remainder string) ([]string, error) {
	var resolved []string
	start := 0
	for i := 0; i <= len(remainder); i++ {
		if i < len(remainder) && remainder[i] != '/' && remainder[i] != '\\' {
			continue
		}
		segment := remainder[start:i]
		start = i + 1

		switch segment {
		case "", ".":
			// Empty segments come from doubled or trailing separators.
		case "..":
			if len(resolved) == 0 {
				return nil, common.NewPathError(common.KindInvalidComponent, raw, `".." traverses above the drive root`)
			}
			resolved = resolved[:len(resolved)-1]
		default:
			if err := validateComponent(raw, segment); err != nil {
				return nil, err
			}
			resolved = append(resolved, segment)
		}
	}
	return resolved, nil
}

// validateComponent rejects illegal characters, over-long names, and
// reserved device names.
func validateComponent(raw, component string) error {
	if len(component) > internal.MaxComponentLength {
		return common.NewPathError(common.KindInvalidComponent, raw, "component exceeds 255 characters")
	}

	for i := 0; i < len(component); i++ {
		switch c := component[i]; {
		case c < 0x20 || c == 0x7f:
			return common.NewPathError(common.KindInvalidComponent, raw, "component contains a control character")
		case c == '<' || c == '>' || c == ':' || c == '"' || c == '|' || c == '?' || c == '*':
			return common.NewPathError(common.KindInvalidComponent, raw, "component contains "+string(c))
		}
	}

	base := component
	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		base = base[:dot]
	}
	if _, reserved := reservedNames[strings.ToUpper(base)]; reserved {
		return common.NewPathError(common.KindInvalidComponent, raw, component+" is a reserved device name")
	}

	return nil
}

// finish applies the shared tail of every drive-path normalization: the
// length ceiling, the long-path prefix, and optional NFC composition.
func finish(raw string, format detect.Format, canonical string, alreadyExtended bool, opts Options) (Result, error) {
	if len(canonical) > internal.ExtendedMaxPath {
		return Result{}, common.NewPathError(common.KindPathTooLong, raw, "exceeds the extended-length ceiling")
	}

	long := alreadyExtended
	if alreadyExtended || len(canonical) > internal.MaxPath {
		canonical = internal.UNCPrefix + canonical
		long = true
	}

	canonical, err := composeNFC(raw, canonical, opts)
	if err != nil {
		return Result{}, err
	}

	return Result{Path: canonical, Format: format, LongPrefixApplied: long}, nil
}

// composeNFC applies canonical composition when configured.
func composeNFC(raw, canonical string, opts Options) (string, error) {
	if !opts.UnicodeNFC {
		return canonical, nil
	}
	if !utf8.ValidString(canonical) {
		return "", common.NewPathError(common.KindUnicodeError, raw, "path is not valid UTF-8")
	}
	return norm.NFC.String(canonical), nil
}

// splitSeparators splits on both separators, dropping empty segments.
func splitSeparators(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '\\'
	})
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
