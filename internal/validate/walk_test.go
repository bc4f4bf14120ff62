package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectLanguages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.py", "x = 1\n")
	writeFile(t, root, "src/lib.go", "package lib\n")
	writeFile(t, root, "tools/setup.cmd", "@echo off\n")
	writeFile(t, root, "README.md", "# readme\n")

	got := detectLanguages(root)
	want := []string{"batch", "go", "python"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("detectLanguages mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkFilesSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.py", "x = 1\n")
	writeFile(t, root, "node_modules/dep/index.js", "module.exports = {}\n")
	writeFile(t, root, ".git/hooks/pre-commit.sh", "#!/bin/sh\n")
	writeFile(t, root, "vendor/lib/lib.go", "package lib\n")

	got := sourceFiles(root)
	want := []string{"src/app.py"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sourceFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestTruncateList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		max   int
		want  string
	}{
		{"under limit", []string{"a", "b"}, 5, "a, b"},
		{"at limit", []string{"a", "b"}, 2, "a, b"},
		{"over limit", []string{"a", "b", "c"}, 2, "a, b..."},
		{"empty", nil, 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateList(tt.items, tt.max); got != tt.want {
				t.Errorf("truncateList(%v, %d) = %q, want %q",
					tt.items, tt.max, got, tt.want)
			}
		})
	}
}
