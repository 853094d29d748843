// SPDX-License-Identifier: MPL-2.0

// Package subshell executes generated script sources with the in-process
// shell interpreter (mvdan/sh).
package subshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// Runner executes script source strings in an embedded POSIX shell.
	// The zero value runs with the process environment and stdio.
	Runner struct {
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Env is the environment in KEY=VALUE form; nil means the process
		// environment.
		Env []string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExitError reports a script that terminated with a nonzero status.
	ExitError struct {
		Status int
	}
)

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("script exited with status %d", e.Status)
}

// NewRunner returns a Runner wired to the process environment and stdio.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses and executes source. A nonzero exit status is returned as an
// *ExitError; any other failure is a parse or interpreter error.
func (r *Runner) Run(ctx context.Context, source string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(source), "autoload")
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Status: int(status)}
		}
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}

// SourceCommand builds a "source this file" script line, escaping path into
// a syntactically safe shell literal.
func SourceCommand(path string) string {
	quoted, err := syntax.Quote(path, syntax.LangPOSIX)
	if err != nil {
		// Quote only fails on control bytes that cannot appear in a real
		// path; fall back to plain single quoting.
		quoted = "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
	}
	return ". " + quoted
}
