// SPDX-License-Identifier: MPL-2.0

// shoal is a lazy autoloader for shell command definitions: it resolves
// command names to script sources from a built-in table or a configurable
// search path and runs them in an embedded POSIX shell.
package main

func main() {
	Execute()
}
