// SPDX-License-Identifier: MPL-2.0

// Package builtins holds the table of built-in autoloadable scripts.
//
// Builtins supply a script source directly, without any filesystem access,
// so they take precedence over the search path and never go stale. The
// default table ships as an embedded TOML manifest.
package builtins

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

//go:embed builtins.toml
var defaultManifest []byte

type (
	// Script pairs a command name with its source body.
	Script struct {
		Name   string `toml:"name"`
		Source string `toml:"source"`
	}

	// Table is an immutable collection of scripts, sorted lexicographically
	// by name. The sort order is the precondition for Lookup's binary
	// search.
	Table struct {
		scripts []Script
	}

	manifest struct {
		Scripts []Script `toml:"scripts"`
	}
)

// New builds a table from scripts already sorted strictly by name.
// Unsorted or duplicate names are rejected.
func New(scripts []Script) (*Table, error) {
	for i := 1; i < len(scripts); i++ {
		if scripts[i-1].Name >= scripts[i].Name {
			return nil, fmt.Errorf("builtins: scripts not strictly sorted by name: %q precedes %q", scripts[i-1].Name, scripts[i].Name)
		}
	}
	return &Table{scripts: scripts}, nil
}

// Default parses the embedded manifest into a table. Manifest entries may
// appear in any order; they are sorted before the table is built.
func Default() (*Table, error) {
	return Parse(defaultManifest)
}

// Parse builds a table from TOML manifest data.
func Parse(data []byte) (*Table, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("builtins: parse manifest: %w", err)
	}
	slices.SortFunc(m.Scripts, func(a, b Script) int {
		return strings.Compare(a.Name, b.Name)
	})
	return New(m.Scripts)
}

// Lookup returns the script source for name. A nil table has no scripts.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := slices.BinarySearchFunc(t.scripts, name, func(s Script, target string) int {
		return strings.Compare(s.Name, target)
	})
	if !ok {
		return "", false
	}
	return t.scripts[i].Source, true
}

// Len returns the number of scripts in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scripts)
}

// Names returns the script names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.scripts))
	for i, s := range t.scripts {
		names[i] = s.Name
	}
	return names
}
