// Package validate implements the individual Positronikal standards
// validators. Each validator inspects one concern of a repository tree
// (required files, build system, code formatting, security) and reports a
// flat list of check results.
package validate

import (
	"context"
	"iter"
	"sort"
)

// Status classifies a single check outcome
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
)

// Result is the outcome of one named check
type Result struct {
	Check   string `json:"check"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Validator runs one family of standards checks against a repository
type Validator interface {
	Name() string
	Validate(ctx context.Context) ([]Result, error)
}

func pass(check, message string) Result {
	return Result{Check: check, Status: StatusPass, Message: message}
}

func fail(check, message string) Result {
	return Result{Check: check, Status: StatusFail, Message: message}
}

func warn(check, message string) Result {
	return Result{Check: check, Status: StatusWarning, Message: message}
}

// sortedKeys iterates a string-keyed map in key order so that check output
// is deterministic across runs.
func sortedKeys[V any](m map[string]V) iter.Seq2[string, V] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return func(yield func(string, V) bool) {
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
