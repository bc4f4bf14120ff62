package validate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/positronikal/standards-check/internal/helptext"
	"github.com/positronikal/standards-check/internal/toolrunner"
)

// DefaultMaxLineLength is the line length limit the standards mandate
const DefaultMaxLineLength = 79

// editorconfigSettings are the settings every .editorconfig must declare
var editorconfigSettings = map[string]string{
	"end_of_line = lf":                "Unix line endings (LF)",
	"charset = utf-8":                 "UTF-8 encoding",
	"indent_style = space":            "Space indentation",
	"trim_trailing_whitespace = true": "Trim trailing whitespace",
	"insert_final_newline = true":     "Final newline",
}

// linters maps each language to its linter invocation
var linters = map[string][]string{
	"python":     {"ruff", "check"},
	"shell":      {"shellcheck"},
	"go":         {"golangci-lint", "run"},
	"javascript": {"eslint"},
	"css":        {"stylelint"},
	"perl":       {"perlcritic"},
}

// Code validates code formatting standards
type Code struct {
	root    string
	maxLine int
	runner  toolrunner.Runner
	log     *zap.Logger
}

// NewCode creates a code standards validator rooted at root. maxLine <= 0
// selects the default limit.
func NewCode(root string, maxLine int, runner toolrunner.Runner, log *zap.Logger) *Code {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	return &Code{root: root, maxLine: maxLine, runner: runner, log: log}
}

func (v *Code) Name() string { return "code_standards" }

// Validate runs every code formatting check
func (v *Code) Validate(ctx context.Context) ([]Result, error) {
	var results []Result

	if _, err := os.Stat(filepath.Join(v.root, ".editorconfig")); err == nil {
		results = append(results, v.checkEditorconfig()...)
	}

	files := sourceFiles(v.root)
	results = append(results, v.checkLineEndings(files)...)
	results = append(results, v.checkEncoding(files)...)
	results = append(results, v.checkLineLength(files)...)
	results = append(results, v.checkIndentation(files)...)
	results = append(results, v.checkTrailingWhitespace(files)...)
	results = append(results, v.checkEmbeddedHelp()...)
	results = append(results, v.runLinters(ctx)...)

	return results, nil
}

func (v *Code) checkEditorconfig() []Result {
	var results []Result

	data, err := os.ReadFile(filepath.Join(v.root, ".editorconfig"))
	if err != nil {
		return []Result{fail("editorconfig",
			fmt.Sprintf("Error reading .editorconfig: %v", err))}
	}
	content := string(data)

	for setting, description := range sortedKeys(editorconfigSettings) {
		check := "editorconfig_" + strings.Fields(setting)[0]
		if strings.Contains(content, setting) {
			results = append(results, pass(check,
				fmt.Sprintf(".editorconfig specifies: %s", description)))
		} else {
			results = append(results, warn(check,
				fmt.Sprintf(".editorconfig missing: %s", description)))
		}
	}

	return results
}

func (v *Code) checkLineEndings(files []string) []Result {
	var offenders []string
	checked := 0

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not check line endings",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		checked++
		if strings.Contains(string(data), "\r\n") {
			offenders = append(offenders, rel)
		}
	}

	if len(offenders) > 0 {
		return []Result{fail("line_endings",
			fmt.Sprintf("Files with Windows line endings (CRLF): %s",
				truncateList(offenders, 5)))}
	}
	if checked > 0 {
		return []Result{pass("line_endings",
			fmt.Sprintf("All %d source files use Unix line endings (LF)", checked))}
	}
	return nil
}

func (v *Code) checkEncoding(files []string) []Result {
	var offenders []string
	checked := 0

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not check encoding",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		checked++
		if !utf8.Valid(data) {
			offenders = append(offenders, rel)
		}
	}

	if len(offenders) > 0 {
		return []Result{fail("encoding",
			fmt.Sprintf("Files with non-UTF-8 encoding: %s",
				truncateList(offenders, 5)))}
	}
	if checked > 0 {
		return []Result{pass("encoding",
			fmt.Sprintf("All %d source files use UTF-8 encoding", checked))}
	}
	return nil
}

func (v *Code) checkLineLength(files []string) []Result {
	var violations []string
	checked := 0

	for _, rel := range files {
		f, err := os.Open(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not check line length",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		checked++

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimRight(scanner.Text(), "\r")
			if n := utf8.RuneCountInString(line); n > v.maxLine {
				violations = append(violations,
					fmt.Sprintf("%s:%d (%d chars)", rel, lineNum, n))
			}
		}
		f.Close()
	}

	if len(violations) > 0 {
		return []Result{fail("line_length",
			fmt.Sprintf("Lines exceeding %d characters: %s",
				v.maxLine, truncateList(violations, 5)))}
	}
	if checked > 0 {
		return []Result{pass("line_length",
			fmt.Sprintf("All lines in %d source files within %d character limit",
				checked, v.maxLine))}
	}
	return nil
}

func (v *Code) checkIndentation(files []string) []Result {
	var offenders []string
	checked := 0

	for _, rel := range files {
		// Makefiles require tabs.
		base := filepath.Base(rel)
		if base == "Makefile" || base == "makefile" || filepath.Ext(rel) == ".mk" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not check indentation",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		checked++
		if strings.Contains(string(data), "\t") {
			offenders = append(offenders, rel)
		}
	}

	if len(offenders) > 0 {
		return []Result{fail("indentation",
			fmt.Sprintf("Files with tab indentation: %s",
				truncateList(offenders, 5)))}
	}
	if checked > 0 {
		return []Result{pass("indentation",
			fmt.Sprintf("All %d source files use space indentation", checked))}
	}
	return nil
}

func (v *Code) checkTrailingWhitespace(files []string) []Result {
	var offenders []string
	checked := 0

	for _, rel := range files {
		f, err := os.Open(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not check trailing whitespace",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		checked++

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if line != strings.TrimRight(line, " \t") {
				offenders = append(offenders, rel)
				break
			}
		}
		f.Close()
	}

	if len(offenders) > 0 {
		return []Result{fail("trailing_whitespace",
			fmt.Sprintf("Files with trailing whitespace: %s",
				truncateList(offenders, 5)))}
	}
	if checked > 0 {
		return []Result{pass("trailing_whitespace",
			fmt.Sprintf("No trailing whitespace found in %d source files", checked))}
	}
	return nil
}

// checkEmbeddedHelp audits batch script templates for the "::::" embedded
// help convention. Scripts without marker lines are reported as advisory
// only, since embedded help is a template convention, not a hard rule.
func (v *Code) checkEmbeddedHelp() []Result {
	var results []Result

	for _, rel := range filesForLanguages(v.root, "batch") {
		check := "embedded_help_" + filepath.Base(rel)

		seq, err := helptext.Extract(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not read script template",
				zap.String("file", rel), zap.Error(err))
			continue
		}

		count := 0
		for range seq {
			count++
		}

		if count > 0 {
			results = append(results, pass(check,
				fmt.Sprintf("Script %s embeds %d decodable help lines", rel, count)))
		} else {
			results = append(results, warn(check,
				fmt.Sprintf("Script %s has no embedded help lines (:::: convention)", rel)))
		}
	}

	return results
}

func (v *Code) runLinters(ctx context.Context) []Result {
	var results []Result

	for _, language := range detectLanguages(v.root) {
		cmd, ok := linters[language]
		if !ok {
			continue
		}
		check := "linter_" + language

		if !v.runner.Look(cmd[0]) {
			results = append(results, warn(check,
				fmt.Sprintf("%s linter not available: %s",
					capitalize(language), cmd[0])))
			continue
		}

		v.log.Debug("running linter",
			zap.String("language", language), zap.Strings("cmd", cmd))

		output, err := v.runner.Run(ctx, v.root, cmd[0], cmd[1:]...)
		if err != nil {
			results = append(results, fail(check,
				fmt.Sprintf("%s linter found issues: %s",
					capitalize(language), truncateOutput(output))))
			continue
		}

		results = append(results, pass(check,
			fmt.Sprintf("%s linter passed", capitalize(language))))
	}

	return results
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncateOutput(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
