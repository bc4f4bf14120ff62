// Package toolrunner executes external validation tools (linters, SAST
// scanners, git) with captured output and context-based timeouts.
package toolrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner defines the interface for external tool execution
type Runner interface {
	// Look reports whether the named tool is available in PATH.
	Look(name string) bool
	// Run executes the tool in dir and returns its combined output.
	// A nonzero exit status is returned as an error alongside whatever
	// output the tool produced.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// systemRunner implements Runner using os/exec
type systemRunner struct{}

// New creates a Runner backed by the host system
func New() Runner {
	return &systemRunner{}
}

// Look checks if a command is available in PATH
func (r *systemRunner) Look(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes a tool and returns trimmed combined output
func (r *systemRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := strings.TrimSpace(stdout.String())
	if output == "" {
		output = strings.TrimSpace(stderr.String())
	}

	if ctx.Err() != nil {
		return output, fmt.Errorf("tool %s: %w", name, ctx.Err())
	}
	if err != nil {
		return output, fmt.Errorf("tool %s: %w", name, err)
	}
	return output, nil
}

// Fake is a scripted Runner for tests. Outputs maps a command name to its
// canned output; Errs maps a command name to its returned error. Commands
// absent from Available are reported as not installed.
type Fake struct {
	Available map[string]bool
	Outputs   map[string]string
	Errs      map[string]error
	Calls     []string
}

// Look reports scripted availability
func (f *Fake) Look(name string) bool {
	return f.Available[name]
}

// Run returns the scripted output and error for name
func (f *Fake) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, strings.Join(append([]string{name}, args...), " "))
	return f.Outputs[name], f.Errs[name]
}
