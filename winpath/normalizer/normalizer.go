// Package normalizer is the facade every consuming utility talks to. It
// orchestrates cache lookup, format detection, normalization, and cache
// insertion, and is safe to share across goroutines without external
// locking.
package normalizer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/ZanzyTHEbar/winpath/winpath/cache"
	"github.com/ZanzyTHEbar/winpath/winpath/common"
	"github.com/ZanzyTHEbar/winpath/winpath/config"
	"github.com/ZanzyTHEbar/winpath/winpath/detect"
	"github.com/ZanzyTHEbar/winpath/winpath/normalize"
	"github.com/ZanzyTHEbar/winpath/winpath/platform"

	"github.com/sourcegraph/conc/pool"
)

// PathNormalizer normalizes raw path strings to their canonical Windows
// form, memoizing successes in an LRU keyed by the raw input. A cached
// result may be stale relative to live filesystem state (a drive removed
// after insertion stays cached until evicted); that tradeoff is accepted,
// there is no invalidation tied to filesystem changes.
type PathNormalizer struct {
	cfg      config.NormalizerConfig
	platform platform.Ops
	results  *cache.LRU[string, normalize.Result]
}

// New creates a normalizer backed by the native platform implementation.
func New(cfg config.NormalizerConfig) *PathNormalizer {
	return NewWithPlatform(cfg, platform.New())
}

// NewWithPlatform creates a normalizer with the platform bridge injected,
// so tests can fake drive existence and relative-path resolution.
func NewWithPlatform(cfg config.NormalizerConfig, ops platform.Ops) *PathNormalizer {
	pn := &PathNormalizer{
		cfg:      cfg,
		platform: ops,
	}
	if cfg.CacheEnabled {
		pn.results = cache.New[string, normalize.Result](cfg.CacheCapacity)
	}
	return pn
}

// Normalize converts a raw path into its canonical form. Failures carry a
// *common.PathError and are never cached.
func (pn *PathNormalizer) Normalize(path string) (normalize.Result, error) {
	if path == "" {
		return normalize.Result{}, common.NewPathError(common.KindEmptyPath, path, "")
	}

	if pn.results != nil {
		if result, ok := pn.results.Get(path); ok {
			result.FromCache = true
			slog.Debug("normalization cache hit", "path", path)
			return result, nil
		}
	}

	format := detect.Detect(path)
	result, err := normalize.Normalize(path, format, pn.options())
	if err != nil {
		slog.Debug("normalization failed",
			"path", path,
			"format", format.String(),
			"error", err)
		return normalize.Result{}, err
	}

	if pn.results != nil {
		pn.results.Put(path, result)
	}

	slog.Debug("normalization completed",
		"path", path,
		"canonical", result.Path,
		"format", result.Format.String(),
		"long_prefix", result.LongPrefixApplied)

	return result, nil
}

// NormalizeToString returns only the canonical path string.
func (pn *PathNormalizer) NormalizeToString(path string) (string, error) {
	result, err := pn.Normalize(path)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

// NormalizeBatch normalizes many paths with bounded concurrency,
// preserving input order. The first failure cancels outstanding work and
// is returned.
func (pn *PathNormalizer) NormalizeBatch(ctx context.Context, paths []string) ([]normalize.Result, error) {
	results := make([]normalize.Result, len(paths))

	workers := pn.cfg.BatchWorkers
	if workers <= 0 {
		workers = min(max(runtime.NumCPU()*2, 4), 32)
	}

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			result, err := pn.Normalize(path)
			if err != nil {
				return fmt.Errorf("normalize %q: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CacheStats returns a snapshot of the cache counters. ok is false when
// caching is disabled.
func (pn *PathNormalizer) CacheStats() (cache.Stats, bool) {
	if pn.results == nil {
		return cache.Stats{}, false
	}
	return pn.results.Stats(), true
}

// ClearCache drops every cached result. Useful for long-lived hosts that
// know the drive topology changed.
func (pn *PathNormalizer) ClearCache() {
	if pn.results != nil {
		pn.results.Clear()
	}
}

// Config returns the immutable configuration this instance was built with.
func (pn *PathNormalizer) Config() config.NormalizerConfig {
	return pn.cfg
}

func (pn *PathNormalizer) options() normalize.Options {
	return normalize.Options{
		ValidateDriveExistence: pn.cfg.ValidateDriveExistence,
		DriveExists:            pn.platform.DriveExists,
		ResolveFullPath:        pn.platform.ResolveFullPath,
		UnicodeNFC:             pn.cfg.UnicodeNormalize,
	}
}

var (
	defaultInstance *PathNormalizer
	defaultOnce     sync.Once
)

// Default returns the process-wide normalizer, created on first use with
// the default configuration.
func Default() *PathNormalizer {
	defaultOnce.Do(func() {
		defaultInstance = New(config.DefaultNormalizerConfig())
	})
	return defaultInstance
}

// NormalizePath normalizes a path through the process-wide instance and
// returns the canonical string. This is the entry point the thin CLI
// wrappers call on every path-like argument before touching the
// filesystem.
func NormalizePath(path string) (string, error) {
	return Default().NormalizeToString(path)
}
