package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// maxFileSize is the repository file size limit (10 MiB)
const maxFileSize = 10 * 1024 * 1024

// requiredFiles must exist at the repository root
var requiredFiles = map[string]string{
	"README.md":       "Project documentation",
	"CONTRIBUTING.md": "Contribution guidelines",
	".gitignore":      "Git ignore patterns",
}

// licenseFiles lists the accepted license file names; at least one must exist
var licenseFiles = []string{
	"COPYING.md",
	"COPYING.LESSER.md",
	"LICENSE.md",
	"LICENSE.CC.md",
}

// recommendedFiles are optional but reported when missing
var recommendedFiles = map[string]string{
	"AUTHORS.md":    "List of contributors",
	"BUGS.md":       "Bug reporting guidelines",
	"SECURITY.md":   "Security policy",
	"USING.md":      "Usage instructions",
	".editorconfig": "Editor configuration",
}

// githubFiles are required once a .github directory exists
var githubFiles = map[string]string{
	".github/SECURITY.md":          "GitHub security policy",
	".github/CODEOWNERS":           "Code ownership",
	".github/dependabot.yml":       "Dependabot configuration",
	".github/workflows/ci.yml":     "CI workflow",
	".github/workflows/codeql.yml": "CodeQL security scanning",
}

// githubTemplates are recommended once a .github directory exists
var githubTemplates = map[string]string{
	".github/ISSUE_TEMPLATE/bug_report.md":      "Bug report template",
	".github/ISSUE_TEMPLATE/feature_request.md": "Feature request template",
	".github/pull_request_template.md":          "Pull request template",
}

// standardDirectories are the conventional top-level layout directories
var standardDirectories = map[string]string{
	"src":  "Source code",
	"test": "Test files",
	"docs": "Documentation",
}

// prohibitedExtensions are binary artifacts that must not be committed
var prohibitedExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".com": true, ".app": true, ".deb": true, ".rpm": true, ".dmg": true,
}

// Files validates required files and directory structure
type Files struct {
	root string
	log  *zap.Logger
}

// NewFiles creates a file requirements validator rooted at root
func NewFiles(root string, log *zap.Logger) *Files {
	return &Files{root: root, log: log}
}

func (v *Files) Name() string { return "file_requirements" }

// Validate runs every file requirement check
func (v *Files) Validate(ctx context.Context) ([]Result, error) {
	var results []Result

	results = append(results, v.checkRequired()...)
	results = append(results, v.checkLicense()...)
	results = append(results, v.checkRecommended()...)

	if info, err := os.Stat(filepath.Join(v.root, ".github")); err == nil && info.IsDir() {
		results = append(results, v.checkGithubFiles()...)
		results = append(results, v.checkGithubTemplates()...)
	}

	results = append(results, v.checkDirectories()...)
	results = append(results, v.checkFileSizes()...)
	results = append(results, v.checkBinaries()...)

	return results, nil
}

func (v *Files) checkRequired() []Result {
	var results []Result
	for filename, description := range sortedKeys(requiredFiles) {
		check := "required_file_" + filename
		info, err := os.Stat(filepath.Join(v.root, filename))
		switch {
		case err != nil:
			results = append(results, fail(check,
				fmt.Sprintf("Missing required file: %s (%s)", filename, description)))
		case info.Size() == 0:
			results = append(results, warn(check,
				fmt.Sprintf("Required file exists but is empty: %s", filename)))
		default:
			results = append(results, pass(check,
				fmt.Sprintf("Required file exists: %s", filename)))
		}
	}
	return results
}

func (v *Files) checkLicense() []Result {
	var found []string
	for _, name := range licenseFiles {
		if _, err := os.Stat(filepath.Join(v.root, name)); err == nil {
			found = append(found, name)
		}
	}

	if len(found) > 0 {
		return []Result{pass("license_file",
			fmt.Sprintf("License file(s) found: %s", strings.Join(found, ", ")))}
	}
	return []Result{fail("license_file",
		fmt.Sprintf("No license file found. Need one of: %s", strings.Join(licenseFiles, ", ")))}
}

func (v *Files) checkRecommended() []Result {
	var results []Result
	for filename, description := range sortedKeys(recommendedFiles) {
		check := "recommended_file_" + filename
		if _, err := os.Stat(filepath.Join(v.root, filename)); err == nil {
			results = append(results, pass(check,
				fmt.Sprintf("Recommended file exists: %s", filename)))
		} else {
			results = append(results, warn(check,
				fmt.Sprintf("Missing recommended file: %s (%s)", filename, description)))
		}
	}
	return results
}

func (v *Files) checkGithubFiles() []Result {
	var results []Result
	for path, description := range sortedKeys(githubFiles) {
		check := "github_file_" + strings.ReplaceAll(path, "/", "_")
		if _, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(path))); err == nil {
			results = append(results, pass(check,
				fmt.Sprintf("GitHub file exists: %s", path)))
		} else {
			results = append(results, fail(check,
				fmt.Sprintf("Missing GitHub file: %s (%s)", path, description)))
		}
	}
	return results
}

func (v *Files) checkGithubTemplates() []Result {
	var results []Result
	for path, description := range sortedKeys(githubTemplates) {
		check := "github_template_" + strings.ReplaceAll(path, "/", "_")
		if _, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(path))); err == nil {
			results = append(results, pass(check,
				fmt.Sprintf("GitHub template exists: %s", path)))
		} else {
			results = append(results, warn(check,
				fmt.Sprintf("Missing GitHub template: %s (%s)", path, description)))
		}
	}
	return results
}

func (v *Files) checkDirectories() []Result {
	var results []Result
	for dirname, description := range sortedKeys(standardDirectories) {
		check := "standard_dir_" + dirname
		path := filepath.Join(v.root, dirname)

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			results = append(results, warn(check,
				fmt.Sprintf("Missing standard directory: %s (%s)", dirname, description)))
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil || len(entries) == 0 {
			results = append(results, warn(check,
				fmt.Sprintf("Standard directory exists but is empty: %s", dirname)))
			continue
		}

		results = append(results, pass(check,
			fmt.Sprintf("Standard directory exists: %s", dirname)))
	}
	return results
}

func (v *Files) checkFileSizes() []Result {
	var results []Result
	for _, rel := range walkFiles(v.root, nil) {
		info, err := os.Stat(filepath.Join(v.root, rel))
		if err != nil {
			v.log.Warn("could not stat file", zap.String("file", rel), zap.Error(err))
			continue
		}
		if info.Size() > maxFileSize {
			results = append(results, fail("file_size_"+filepath.Base(rel),
				fmt.Sprintf("File exceeds 10MB limit: %s (%.2fMB)",
					rel, float64(info.Size())/1024/1024)))
		}
	}

	if len(results) == 0 {
		results = append(results, pass("file_size_limits",
			"All files within 10MB size limit"))
	}
	return results
}

func (v *Files) checkBinaries() []Result {
	var results []Result
	for _, rel := range walkFiles(v.root, nil) {
		if prohibitedExtensions[strings.ToLower(filepath.Ext(rel))] {
			results = append(results, fail("binary_file_"+filepath.Base(rel),
				fmt.Sprintf("Prohibited binary file found: %s", rel)))
		}
	}

	if len(results) == 0 {
		results = append(results, pass("binary_files",
			"No prohibited binary files found"))
	}
	return results
}
