// SPDX-License-Identifier: MPL-2.0

package autoload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shoal-dev/shoal/internal/builtins"
	"github.com/shoal-dev/shoal/internal/lru"
	"github.com/shoal-dev/shoal/internal/subshell"
	"github.com/shoal-dev/shoal/internal/testutil"
)

const (
	// DefaultStalenessInterval is the minimum time between re-validating a
	// cached resolution against the filesystem.
	DefaultStalenessInterval = time.Second

	// DefaultCapacity bounds the resolution cache.
	DefaultCapacity = 1024

	// DefaultFileSuffix is appended to a command name to form the candidate
	// file name in each search directory.
	DefaultFileSuffix = ".fish"
)

type (
	// Runner executes a resolved script source. Execution failures are
	// swallowed by the manager: a failing script body does not revert the
	// cache state.
	Runner interface {
		Run(ctx context.Context, source string) error
	}

	// Options configure a Manager. SearchVariable is required; every other
	// field has a production default.
	Options struct {
		// SearchVariable names the environment variable whose value is the
		// ordered list of directories to search.
		SearchVariable string

		// Builtins is the immutable, sorted table of built-in scripts. The
		// manager borrows it and never mutates it. May be nil.
		Builtins *builtins.Table

		// Capacity bounds the resolution cache. Default DefaultCapacity.
		Capacity int

		// StalenessInterval is the re-validation debounce. Default
		// DefaultStalenessInterval.
		StalenessInterval time.Duration

		// FileSuffix is the candidate file suffix. Default DefaultFileSuffix.
		FileSuffix string

		// Env supplies variable values. Default ProcessEnv.
		Env VariableSource

		// SplitPath splits a search-variable value into directories.
		// Default filepath.SplitList.
		SplitPath func(value string) []string

		// Prober checks candidate files. Default NewOSProber(Clock).
		Prober Prober

		// Runner executes resolved script sources. Default subshell.NewRunner.
		Runner Runner

		// OnCommandRemoved is notified before a loaded entry is replaced or
		// evicted, so stale definitions can be unregistered. It runs with
		// the manager lock held: re-entering the manager from this callback
		// deadlocks. May be nil.
		OnCommandRemoved func(name string)

		// Clock is the time source. Default testutil.RealClock.
		Clock testutil.Clock

		// Logger receives diagnostics (circular-dependency warnings, script
		// failures). Default logs to stderr with an "autoload" prefix.
		Logger *log.Logger
	}

	// entry is the cache record for one command name.
	entry struct {
		access      AccessAttempt
		loaded      bool
		placeholder bool
	}

	// Manager resolves command names to script sources through a bounded
	// recency cache. Construction also yields a Loader; see New.
	Manager struct {
		searchVariable string
		builtins       *builtins.Table
		staleness      time.Duration
		suffix         string
		env            VariableSource
		splitPath      func(string) []string
		prober         Prober
		runner         Runner
		removed        func(string)
		clock          testutil.Clock
		logger         *log.Logger

		mu    sync.Mutex // guards cache and path
		cache *lru.Cache[*entry]
		path  string // last observed search-variable value

		// inProgress is the recursion guard: names currently mid-load.
		// Only the Loader goroutine touches it, so it needs no lock.
		inProgress map[string]struct{}
	}

	// Loader is the capability handle for the side-effecting operations.
	// All Loader methods must be called from a single designated goroutine;
	// obtaining the handle from New and keeping it on that goroutine is the
	// type-level form of that contract.
	Loader struct {
		m *Manager
	}
)

// New builds a Manager and its Loader handle.
func New(opts Options) (*Manager, *Loader, error) {
	if opts.SearchVariable == "" {
		return nil, nil, errors.New("autoload: Options.SearchVariable is required")
	}
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.StalenessInterval == 0 {
		opts.StalenessInterval = DefaultStalenessInterval
	}
	if opts.FileSuffix == "" {
		opts.FileSuffix = DefaultFileSuffix
	}
	if opts.Env == nil {
		opts.Env = ProcessEnv{}
	}
	if opts.SplitPath == nil {
		opts.SplitPath = filepath.SplitList
	}
	if opts.Clock == nil {
		opts.Clock = testutil.RealClock{}
	}
	if opts.Prober == nil {
		opts.Prober = NewOSProber(opts.Clock)
	}
	if opts.Runner == nil {
		opts.Runner = subshell.NewRunner()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "autoload"})
	}

	m := &Manager{
		searchVariable: opts.SearchVariable,
		builtins:       opts.Builtins,
		staleness:      opts.StalenessInterval,
		suffix:         opts.FileSuffix,
		env:            opts.Env,
		splitPath:      opts.SplitPath,
		prober:         opts.Prober,
		runner:         opts.Runner,
		removed:        opts.OnCommandRemoved,
		clock:          opts.Clock,
		logger:         opts.Logger,
		inProgress:     make(map[string]struct{}),
	}
	m.cache = lru.New[*entry](opts.Capacity, m.entryEvicted)

	return m, &Loader{m: m}, nil
}

// entryEvicted is the cache eviction hook. It runs with mu held, on the
// Loader goroutine for every eviction with externally visible effects.
func (m *Manager) entryEvicted(key string, e *entry) {
	if e.loaded && m.removed != nil {
		m.removed(key)
	}
}

// CanLoad reports whether cmd resolves to a builtin or an accessible file,
// without loading anything and without eviction side effects. Safe for
// concurrent use. A nil vars falls back to the manager's variable source.
//
// A concurrent search-path change may be observed before or after this call
// reads the variable; the answer is point-in-time consistent.
func (m *Manager) CanLoad(cmd string, vars VariableSource) bool {
	if vars == nil {
		vars = m.env
	}
	value, _ := vars.Get(m.searchVariable)
	if value == "" {
		return false
	}
	return m.locate(context.Background(), cmd, false, false, m.splitPath(value))
}

// Load resolves cmd, executing its script source if one is found. With
// reload set, a cached resolution older than the staleness interval is
// re-validated against the filesystem.
//
// The return value reports whether a (re)load actually occurred, not
// whether the command exists; use CanLoad for existence.
func (l *Loader) Load(ctx context.Context, cmd string, reload bool) bool {
	m := l.m

	m.mu.Lock()
	pathValue, _ := m.env.Get(m.searchVariable)
	if pathValue == "" {
		// Nowhere to search.
		m.mu.Unlock()
		return false
	}
	if pathValue != m.path {
		// The search root changed: every cached entry is suspect.
		m.path = pathValue
		m.cache.EvictAll()
	}
	m.mu.Unlock()

	// A nested load of the same name means cmd's own script triggered
	// another resolution of cmd. Warn and terminate the recursion instead
	// of propagating a failure.
	if _, loading := m.inProgress[cmd]; loading {
		m.logger.Warn(
			"circular dependency in autoload scripts, skipping nested load",
			"command", cmd,
		)
		return true
	}
	m.inProgress[cmd] = struct{}{}
	defer delete(m.inProgress, cmd)

	return m.locate(ctx, cmd, true, reload, m.splitPath(pathValue))
}

// Unload evicts cmd from the cache, unregistering it first if it was
// loaded. Reports whether the entry existed.
func (l *Loader) Unload(cmd string) bool {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.m.cache.Evict(cmd)
}

// UnloadAll evicts every cached entry.
func (l *Loader) UnloadAll() {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	l.m.cache.EvictAll()
}

// locate implements the resolution policy. The caller must not hold mu.
//
// cmd is the command name; reallyLoad selects loading over existence
// probing; reload requests re-validation of cached records; dirs is the
// split search path. With reallyLoad the result reports whether a reload
// actually occurred, otherwise whether cmd resolves to anything.
func (m *Manager) locate(ctx context.Context, cmd string, reallyLoad, reload bool, dirs []string) bool {
	// Cache-reuse check. Stale records are acceptable unless a reload was
	// requested; placeholders and not-yet-loaded records cannot satisfy an
	// actual load.
	m.mu.Lock()
	if e, ok := m.cache.Get(cmd); ok {
		usable := true
		switch {
		case reload && m.clock.Since(e.access.LastChecked) > m.staleness:
			usable = false
		case reallyLoad && !e.loaded:
			usable = false
		}
		if usable {
			accessible := e.access.Accessible
			m.mu.Unlock()
			return accessible
		}
	}
	m.mu.Unlock()

	var (
		source    string
		hasSource bool
		foundFile bool
		reloaded  bool
	)

	// Builtins take precedence and never require a filesystem probe.
	if src, ok := m.builtins.Lookup(cmd); ok {
		source = src
		hasSource = true
	}

	if !hasSource {
		// First accessible candidate wins; remaining directories are not
		// probed.
		for _, dir := range dirs {
			candidate := filepath.Join(dir, cmd+m.suffix)
			access := m.prober.Probe(candidate)
			if !access.Accessible {
				continue
			}
			foundFile = true

			m.mu.Lock()
			e, _ := m.cache.Get(cmd)

			// Load when the entry is missing, never loaded, or its recorded
			// modification time matches the on-disk one. The matching
			// mod-time clause reads inverted; it is preserved long-standing
			// behavior (see DESIGN.md).
			needLoad := reallyLoad && (e == nil || access.ModTime.Equal(e.access.ModTime) || !e.loaded)
			if needLoad {
				source = subshell.SourceCommand(candidate)
				hasSource = true

				// Drop the stale definition before reloading. A collaborator
				// that re-enters the manager from OnCommandRemoved will
				// deadlock on mu; that constraint is part of the contract.
				if e != nil && e.loaded {
					if m.removed != nil {
						m.removed(cmd)
					}
					e.placeholder = false
				}
				reloaded = true
			}

			if e == nil {
				e = &entry{}
				// Probing may run off the Loader goroutine, so it must not
				// trigger eviction side effects.
				if reallyLoad {
					m.cache.Add(cmd, e)
				} else {
					m.cache.AddWithoutEviction(cmd, e)
				}
			}

			// The script only actually runs below, but it is marked loaded
			// while the entry is in hand.
			if needLoad {
				e.loaded = true
			}

			// Record the fresh access metadata unconditionally so staleness
			// tracking stays current even when no reload happened.
			e.access = access
			m.mu.Unlock()
			break
		}

		// Negative cache: remember that the search failed so resolutions
		// within the staleness interval skip the filesystem entirely.
		if !foundFile && !hasSource {
			m.mu.Lock()
			e, ok := m.cache.Get(cmd)
			if !ok {
				e = &entry{placeholder: true}
				if reallyLoad {
					m.cache.Add(cmd, e)
				} else {
					m.cache.AddWithoutEviction(cmd, e)
				}
			}
			e.access.LastChecked = m.clock.Now()
			m.mu.Unlock()
		}
	}

	// Execute outside the lock so slow scripts do not block concurrent
	// probers. A failing script body does not revert the cache state.
	if reallyLoad && hasSource {
		if err := m.runner.Run(ctx, source); err != nil {
			m.logger.Debug("autoload script failed", "command", cmd, "err", err)
		}
	}

	if reallyLoad {
		return reloaded
	}
	return foundFile || hasSource
}
