package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/positronikal/standards-check/internal/toolrunner"
)

func TestSecurityFilesMissing(t *testing.T) {
	root := t.TempDir()

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	byCheck := statusOf(results)
	assert.Equal(t, StatusFail, byCheck["security_file_.github_SECURITY.md"])
	assert.Equal(t, StatusFail, byCheck["security_file_.github_dependabot.yml"])
	assert.Equal(t, StatusFail, byCheck["security_file_.github_workflows_codeql.yml"])
}

func TestSecurityFilesMinimalContentWarns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".github/SECURITY.md", "# stub")

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusWarning,
		statusOf(results)["security_file_.github_SECURITY.md"])
}

func TestSensitiveDataDetection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "settings.py",
		`api_key = "sk-0123456789abcdef0123456789"`+"\n")

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusFail, statusOf(results)["sensitive_data"])
}

func TestSensitiveDataClean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "API_KEY = os.environ[\"API_KEY\"]\n")

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusPass, statusOf(results)["sensitive_data"])
}

func TestCommitSigning(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		gitOut string
		gitErr error
		want   Status
	}{
		{
			name:   "all signed",
			gitOut: "aaa G\nbbb G\nccc U",
			want:   StatusPass,
		},
		{
			name:   "partially signed",
			gitOut: "aaa G\nbbb N",
			want:   StatusWarning,
		},
		{
			name:   "none signed",
			gitOut: "aaa N\nbbb N",
			want:   StatusFail,
		},
		{
			name:   "not a repository",
			gitErr: errors.New("exit status 128"),
			want:   StatusWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &toolrunner.Fake{
				Available: map[string]bool{"git": true},
				Outputs:   map[string]string{"git": tt.gitOut},
			}
			if tt.gitErr != nil {
				fake.Errs = map[string]error{"git": tt.gitErr}
			}

			v := NewSecurity(root, fake, testLogger())
			results, err := v.Validate(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.want, statusOf(results)["commit_signing"])
		})
	}
}

func TestDependencyPinning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{}")
	writeFile(t, root, "go.mod", "module example.com/demo\n")
	writeFile(t, root, "go.sum", "example.com/dep v1.0.0 h1:abc\n")
	writeFile(t, root, "app.py", "x = 1\n")

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	byCheck := statusOf(results)
	assert.Equal(t, StatusFail, byCheck["npm_lockfile"])
	assert.Equal(t, StatusPass, byCheck["go_lockfile"])
	assert.Equal(t, StatusWarning, byCheck["python_dependencies"])

	writeFile(t, root, "package-lock.json", "{}")
	writeFile(t, root, "requirements.txt", "requests==2.32.0\n")

	results, err = v.Validate(context.Background())
	require.NoError(t, err)

	byCheck = statusOf(results)
	assert.Equal(t, StatusPass, byCheck["npm_lockfile"])
	assert.Equal(t, StatusPass, byCheck["python_dependencies"])
}

func TestWorkflowPermissions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".github/workflows/ci.yml", `
name: CI
on: [push]
permissions:
  contents: read
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
`)
	writeFile(t, root, ".github/workflows/release.yml", `
name: Release
on: [push]
permissions:
  contents: write
jobs:
  publish:
    runs-on: ubuntu-latest
    steps:
      - run: echo "${{ secrets.NPM_TOKEN }}"
`)
	writeFile(t, root, ".github/workflows/lint.yml", `
name: Lint
on: [push]
jobs:
  lint:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
`)

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	byCheck := statusOf(results)
	assert.Equal(t, StatusPass, byCheck["workflow_permissions_ci.yml"])
	assert.Equal(t, StatusWarning, byCheck["workflow_permissions_release.yml"])
	assert.Equal(t, StatusWarning, byCheck["workflow_permissions_lint.yml"])
	assert.Equal(t, StatusWarning, byCheck["workflow_secrets_release.yml"])
}

func TestWorkflowReadAllScalar(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".github/workflows/ci.yml", `
name: CI
permissions: read-all
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - run: true
`)

	v := NewSecurity(root, noTools(), testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusPass, statusOf(results)["workflow_permissions_ci.yml"])
}

func TestSASTResults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	fake := &toolrunner.Fake{
		Available: map[string]bool{"gosec": true},
		Outputs:   map[string]string{"gosec": "G104: unhandled error"},
		Errs:      map[string]error{"gosec": errors.New("exit status 1")},
	}

	v := NewSecurity(root, fake, testLogger())
	results, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusFail, statusOf(results)["sast_go"])

	// Tool not installed downgrades to a warning.
	v = NewSecurity(root, noTools(), testLogger())
	results, err = v.Validate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, statusOf(results)["sast_go"])
}
