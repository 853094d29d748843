// SPDX-License-Identifier: MPL-2.0

package main

import (
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	defer func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q, want dev marker", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc1234", "2026-01-02"
	got := getVersionString()
	for _, want := range []string{"1.2.3", "abc1234", "2026-01-02"} {
		if !strings.Contains(got, want) {
			t.Errorf("getVersionString() = %q, missing %q", got, want)
		}
	}
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		outcome string
		ok      bool
	}{
		{"success", "greet", "loaded", true},
		{"failure", "missing", "not found", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatOutcome(tt.cmd, tt.outcome, tt.ok)
			if !strings.Contains(got, tt.cmd) {
				t.Errorf("formatOutcome() = %q, missing command name %q", got, tt.cmd)
			}
			if !strings.Contains(got, tt.outcome) {
				t.Errorf("formatOutcome() = %q, missing outcome %q", got, tt.outcome)
			}
			marker := "✓"
			if !tt.ok {
				marker = "✗"
			}
			if !strings.Contains(got, marker) {
				t.Errorf("formatOutcome() = %q, missing marker %q", got, marker)
			}
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := NewExitError(nil, 3)
	if inner.Error() != "exit code 3" {
		t.Errorf("Error() = %q, want %q", inner.Error(), "exit code 3")
	}
	if inner.Unwrap() != nil {
		t.Error("Unwrap() should be nil for bare exit errors")
	}
}
