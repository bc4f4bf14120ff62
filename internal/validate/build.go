package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// requiredNpmPackages are the hook/formatting devDependencies mandated for
// Node.js projects
var requiredNpmPackages = map[string]string{
	"husky":       "^9.1.7",
	"lint-staged": "^15.5.0",
	"prettier":    "^3.5.3",
}

// requiredNpmScripts wire the git hooks into npm
var requiredNpmScripts = map[string]string{
	"prepare":    "husky",
	"pre-commit": "lint-staged",
}

// gitHooks are the husky hook files expected in Node.js projects
var gitHooks = map[string]string{
	".husky/pre-commit": "Pre-commit hook",
	".husky/commit-msg": "Commit message validation hook",
}

// unpinnedRefs are branch names that never count as a pinned action version
var unpinnedRefs = map[string]bool{
	"main": true, "master": true, "develop": true, "latest": true,
}

// packageJSON is the subset of package.json the validator reads
type packageJSON struct {
	Scripts         map[string]string `json:"scripts"`
	DevDependencies map[string]string `json:"devDependencies"`
	LintStaged      json.RawMessage   `json:"lint-staged"`
}

// Build validates build system requirements
type Build struct {
	root string
	log  *zap.Logger
}

// NewBuild creates a build system validator rooted at root
func NewBuild(root string, log *zap.Logger) *Build {
	return &Build{root: root, log: log}
}

func (v *Build) Name() string { return "build_system" }

// Validate runs every build system check
func (v *Build) Validate(ctx context.Context) ([]Result, error) {
	var results []Result

	if _, err := os.Stat(filepath.Join(v.root, "package.json")); err == nil {
		results = append(results, v.checkNpm()...)
		results = append(results, v.checkGitHooks()...)
	}

	results = append(results, v.checkGnuMake()...)
	results = append(results, v.checkOtherBuildSystems()...)
	results = append(results, v.checkActionPinning()...)

	return results, nil
}

func (v *Build) checkNpm() []Result {
	var results []Result
	path := filepath.Join(v.root, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return []Result{fail("package_json",
			fmt.Sprintf("Error reading package.json: %v", err))}
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return []Result{fail("package_json",
			fmt.Sprintf("Invalid package.json: %v", err))}
	}

	for name, version := range sortedKeys(requiredNpmPackages) {
		check := "npm_package_" + name
		if _, ok := pkg.DevDependencies[name]; ok {
			results = append(results, pass(check,
				fmt.Sprintf("Required package %s found in devDependencies", name)))
		} else {
			results = append(results, fail(check,
				fmt.Sprintf("Missing required package: %s %s", name, version)))
		}
	}

	for name, expected := range sortedKeys(requiredNpmScripts) {
		check := "npm_script_" + name
		got, ok := pkg.Scripts[name]
		switch {
		case !ok:
			results = append(results, fail(check,
				fmt.Sprintf("Missing required script: %s", name)))
		case got != expected:
			results = append(results, warn(check,
				fmt.Sprintf("Script %q exists but value differs: expected %q, got %q",
					name, expected, got)))
		default:
			results = append(results, pass(check,
				fmt.Sprintf("Required script %q configured correctly", name)))
		}
	}

	_, rcErr := os.Stat(filepath.Join(v.root, ".lintstagedrc"))
	if len(pkg.LintStaged) > 0 || rcErr == nil {
		results = append(results, pass("lint_staged_config",
			"lint-staged configuration found"))
	} else {
		results = append(results, warn("lint_staged_config",
			"No lint-staged configuration found"))
	}

	return results
}

func (v *Build) checkGitHooks() []Result {
	var results []Result
	for hook, description := range sortedKeys(gitHooks) {
		check := "git_hook_" + strings.ReplaceAll(hook, "/", "_")
		path := filepath.Join(v.root, filepath.FromSlash(hook))

		info, err := os.Stat(path)
		switch {
		case err != nil:
			results = append(results, fail(check,
				fmt.Sprintf("Missing git hook: %s (%s)", hook, description)))
		case info.Mode()&0o111 == 0:
			results = append(results, warn(check,
				fmt.Sprintf("Git hook exists but is not executable: %s", hook)))
		default:
			results = append(results, pass(check,
				fmt.Sprintf("Git hook exists and is executable: %s", hook)))
		}
	}
	return results
}

func (v *Build) checkGnuMake() []Result {
	// GNU Make discipline only applies to C/C++ trees.
	if len(filesForLanguages(v.root, "c", "cpp")) == 0 {
		return nil
	}

	var results []Result

	configure := filepath.Join(v.root, "configure")
	info, err := os.Stat(configure)
	switch {
	case err != nil:
		results = append(results, warn("gnu_make_configure",
			"No GNU configure script found (required for C/C++ projects)"))
	case info.Mode()&0o111 == 0:
		results = append(results, warn("gnu_make_configure",
			"GNU configure script exists but is not executable"))
	default:
		results = append(results, pass("gnu_make_configure",
			"GNU configure script exists and is executable"))
	}

	if _, err := os.Stat(filepath.Join(v.root, "Makefile.am")); err == nil {
		results = append(results, pass("gnu_make_automake",
			"Makefile.am (Automake) found"))
	} else {
		results = append(results, warn("gnu_make_automake",
			"No Makefile.am found (recommended for GNU Make projects)"))
	}

	if _, err := os.Stat(filepath.Join(v.root, "Makefile")); err == nil {
		results = append(results, pass("gnu_make_makefile", "Makefile found"))
	}

	return results
}

func (v *Build) checkOtherBuildSystems() []Result {
	var results []Result

	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(v.root, name))
		return err == nil
	}

	if exists("setup.py") || exists("pyproject.toml") {
		results = append(results, pass("python_build",
			"Python build configuration found"))
	}
	if exists("go.mod") {
		results = append(results, pass("go_build",
			"Go module configuration found"))
	}
	if exists("Cargo.toml") {
		results = append(results, pass("rust_build",
			"Rust Cargo configuration found"))
	}
	if exists("pom.xml") {
		results = append(results, pass("java_maven", "Maven configuration found"))
	} else if exists("build.gradle") {
		results = append(results, pass("java_gradle", "Gradle configuration found"))
	}

	return results
}

func (v *Build) checkActionPinning() []Result {
	var results []Result

	for _, wf := range loadWorkflows(v.root) {
		if wf.Err != nil {
			results = append(results, fail("workflow_file_"+wf.File,
				fmt.Sprintf("Error reading workflow file %s: %v", wf.File, wf.Err)))
			continue
		}

		for _, ref := range wf.Workflow.uses() {
			action, version, found := strings.Cut(ref, "@")
			check := "action_version_" + action

			switch {
			case !found || unpinnedRefs[version]:
				results = append(results, warn(check,
					fmt.Sprintf("Action %s uses unpinned version: %s", action, version)))
			case version == "*" && strings.HasPrefix(action, "actions/"):
				results = append(results, pass(check,
					fmt.Sprintf("GitHub official action %s uses wildcard (allowed)", action)))
			default:
				results = append(results, pass(check,
					fmt.Sprintf("Action %s uses pinned version: %s", action, version)))
			}
		}
	}

	return results
}
