// SPDX-License-Identifier: MPL-2.0

package autoload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoal-dev/shoal/internal/testutil"
)

func TestOSProber_Probe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.fish")
	if err := os.WriteFile(path, []byte("greet() { :; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	clock := testutil.NewFakeClock(time.Time{})
	p := NewOSProber(clock)

	t.Run("accessible file", func(t *testing.T) {
		att := p.Probe(path)
		if !att.Accessible {
			t.Fatalf("Probe(%q).Accessible = false, want true (err: %v)", path, att.Err)
		}
		if att.ModTime.IsZero() {
			t.Error("ModTime is zero, want the file's mod time")
		}
		if !att.LastChecked.Equal(clock.Now()) {
			t.Errorf("LastChecked = %v, want clock time %v", att.LastChecked, clock.Now())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		att := p.Probe(filepath.Join(dir, "absent.fish"))
		if att.Accessible {
			t.Error("Probe(absent).Accessible = true, want false")
		}
		if att.Err == nil {
			t.Error("Err = nil, want the stat failure")
		}
		if att.LastChecked.IsZero() {
			t.Error("LastChecked is zero, want it recorded on failure too")
		}
	})

	t.Run("directory is not a script", func(t *testing.T) {
		att := p.Probe(dir)
		if att.Accessible {
			t.Error("Probe(directory).Accessible = true, want false")
		}
	})
}

func TestNewOSProber_NilClock(t *testing.T) {
	p := NewOSProber(nil)
	att := p.Probe(filepath.Join(t.TempDir(), "absent.fish"))
	if att.LastChecked.IsZero() {
		t.Error("LastChecked is zero, want system time from the default clock")
	}
}
