// SPDX-License-Identifier: MPL-2.0

package autoload

import (
	"fmt"
	"os"
	"time"

	"github.com/shoal-dev/shoal/internal/testutil"
)

type (
	// AccessAttempt records the outcome of probing a candidate file. It is
	// kept on the cache entry so later resolutions can answer from memory.
	AccessAttempt struct {
		// Accessible is true when the file exists and opened for reading.
		Accessible bool
		// ModTime is the file's modification time at probe time.
		ModTime time.Time
		// LastChecked is when the probe completed.
		LastChecked time.Time
		// Err is the stat or open failure, if any. A failed probe is data,
		// not an error: it feeds the negative cache.
		Err error
	}

	// Prober checks whether a candidate path is a readable script file.
	Prober interface {
		Probe(path string) AccessAttempt
	}

	// OSProber probes the real filesystem.
	OSProber struct {
		clock testutil.Clock
	}
)

// NewOSProber returns a filesystem prober. A nil clock means system time.
func NewOSProber(clock testutil.Clock) *OSProber {
	if clock == nil {
		clock = testutil.RealClock{}
	}
	return &OSProber{clock: clock}
}

// Probe stats path and verifies it opens for reading. LastChecked is
// recorded after the kernel calls, on the assumption that on a slow
// filesystem the lag comes before the check, not after.
func (p *OSProber) Probe(path string) AccessAttempt {
	var att AccessAttempt

	info, err := os.Stat(path)
	switch {
	case err != nil:
		att.Err = err
	case !info.Mode().IsRegular():
		att.Err = fmt.Errorf("%s: not a regular file", path)
	default:
		att.ModTime = info.ModTime()
		f, err := os.Open(path)
		if err != nil {
			att.Err = err
		} else {
			_ = f.Close()
			att.Accessible = true
		}
	}

	att.LastChecked = p.clock.Now()
	return att
}
