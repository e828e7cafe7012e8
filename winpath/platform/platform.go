// Package platform is the safety-wrapped bridge over the OS path-query
// primitives. Every buffer-returning OS call follows the same discipline:
// measure the required size, allocate exactly that much, fill, then verify
// the reported length is strictly inside the allocation before converting.
// An out-of-bound report is a platform fault, never trusted.
package platform

// Ops exposes the OS path queries the normalizer depends on. Implementations
// must be safe for concurrent use; all calls are bounded synchronous
// syscalls with no cancellation semantics.
type Ops interface {
	// ResolveFullPath resolves a (possibly relative) path to its absolute
	// form using the OS resolver.
	ResolveFullPath(path string) (string, error)

	// LongPathName expands 8.3 short aliases to their long form.
	LongPathName(path string) (string, error)

	// ShortPathName converts a path to its 8.3 short alias form.
	ShortPathName(path string) (string, error)

	// DriveExists reports whether <letter>:\ exists. It is applied
	// identically to every letter A-Z, returns a plain boolean, and never
	// panics; callers interpret false as an invalid drive.
	DriveExists(letter byte) bool
}

// drivePath builds the root path probed by DriveExists.
func drivePath(letter byte) string {
	return string([]byte{letter, ':', '\\'})
}
