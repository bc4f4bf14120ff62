package validate

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// writeFile creates rel under root with content, making parent directories
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeExecutable creates rel under root with the executable bit set
func writeExecutable(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

// statusOf indexes results by check name
func statusOf(results []Result) map[string]Status {
	byCheck := make(map[string]Status, len(results))
	for _, res := range results {
		byCheck[res.Check] = res.Status
	}
	return byCheck
}

// testLogger returns a silent logger for validator construction
func testLogger() *zap.Logger {
	return zap.NewNop()
}
