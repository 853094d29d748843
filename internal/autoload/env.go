// SPDX-License-Identifier: MPL-2.0

package autoload

import "os"

type (
	// VariableSource supplies environment variable values.
	VariableSource interface {
		// Get returns the value of name and whether it is set.
		Get(name string) (value string, ok bool)
	}

	// ProcessEnv reads the process environment. os.LookupEnv is safe for
	// concurrent use, so one instance serves the loading goroutine and
	// concurrent probers alike.
	ProcessEnv struct{}
)

// Get returns the value of the named process environment variable.
func (ProcessEnv) Get(name string) (string, bool) {
	return os.LookupEnv(name)
}
