// Package checker orchestrates the standards validators and aggregates
// their results into a single report.
package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/positronikal/standards-check/internal/toolrunner"
	"github.com/positronikal/standards-check/internal/validate"
)

// Checker validates a repository against the Positronikal coding standards
type Checker struct {
	repoPath string
	log      *zap.Logger
	runner   toolrunner.Runner
	maxLine  int
}

// Option configures a Checker
type Option func(*Checker)

// WithLogger sets the logger (default: zap.NewNop)
func WithLogger(log *zap.Logger) Option {
	return func(c *Checker) { c.log = log }
}

// WithRunner sets the external tool runner (default: the system runner)
func WithRunner(r toolrunner.Runner) Option {
	return func(c *Checker) { c.runner = r }
}

// WithMaxLineLength overrides the line length limit for code checks
func WithMaxLineLength(n int) Option {
	return func(c *Checker) { c.maxLine = n }
}

// New creates a Checker for the repository at repoPath. The path must
// exist and be a directory; a missing path surfaces as an error satisfying
// errors.Is(err, fs.ErrNotExist).
func New(repoPath string, opts ...Option) (*Checker, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolving repository path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("repository path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository path is not a directory: %s", abs)
	}

	c := &Checker{
		repoPath: abs,
		log:      zap.NewNop(),
		runner:   toolrunner.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log.Info("initialized checker", zap.String("repository", c.repoPath))
	return c, nil
}

// RepoPath returns the resolved repository path
func (c *Checker) RepoPath() string {
	return c.repoPath
}

// All runs every validator in order. includeForensic adds the forensic
// documentation checks.
func (c *Checker) All(ctx context.Context, includeForensic bool) *Report {
	report := NewReport(c.repoPath)

	c.run(ctx, report, c.filesValidator())
	c.run(ctx, report, c.buildValidator())
	c.run(ctx, report, c.codeValidator())
	c.run(ctx, report, c.securityValidator())
	if includeForensic {
		c.run(ctx, report, c.forensicValidator())
	}

	return report
}

// Files runs only the file requirement checks
func (c *Checker) Files(ctx context.Context) *Report {
	report := NewReport(c.repoPath)
	c.run(ctx, report, c.filesValidator())
	return report
}

// Build runs only the build system checks
func (c *Checker) Build(ctx context.Context) *Report {
	report := NewReport(c.repoPath)
	c.run(ctx, report, c.buildValidator())
	return report
}

// Code runs only the code standard checks
func (c *Checker) Code(ctx context.Context) *Report {
	report := NewReport(c.repoPath)
	c.run(ctx, report, c.codeValidator())
	return report
}

// Security runs only the security checks
func (c *Checker) Security(ctx context.Context) *Report {
	report := NewReport(c.repoPath)
	c.run(ctx, report, c.securityValidator())
	return report
}

// Forensic runs only the forensic tool checks
func (c *Checker) Forensic(ctx context.Context) *Report {
	report := NewReport(c.repoPath)
	c.run(ctx, report, c.forensicValidator())
	return report
}

// run executes one validator and folds its results into the report. A
// validator error is recorded as a report error; it never aborts the
// remaining validators.
func (c *Checker) run(ctx context.Context, report *Report, v validate.Validator) {
	c.log.Info("running checks", zap.String("validator", v.Name()))

	results, err := v.Validate(ctx)
	if err != nil {
		c.log.Error("validator failed",
			zap.String("validator", v.Name()), zap.Error(err))
		report.AddError(v.Name(), err.Error())
		return
	}
	report.Merge(results)
}

func (c *Checker) filesValidator() validate.Validator {
	return validate.NewFiles(c.repoPath, c.log)
}

func (c *Checker) buildValidator() validate.Validator {
	return validate.NewBuild(c.repoPath, c.log)
}

func (c *Checker) codeValidator() validate.Validator {
	return validate.NewCode(c.repoPath, c.maxLine, c.runner, c.log)
}

func (c *Checker) securityValidator() validate.Validator {
	return validate.NewSecurity(c.repoPath, c.runner, c.log)
}

func (c *Checker) forensicValidator() validate.Validator {
	return validate.NewForensic(c.repoPath)
}
