package toolrunner

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLook(t *testing.T) {
	r := New()

	// go itself is guaranteed to exist in test environments
	assert.True(t, r.Look("go"))
	assert.False(t, r.Look("definitely-not-a-real-tool-xyz"))
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX echo")
	}

	r := New()
	out, err := r.Run(context.Background(), t.TempDir(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunNonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX false")
	}

	r := New()
	_, err := r.Run(context.Background(), t.TempDir(), "false")
	assert.Error(t, err)
}

func TestRunHonorsContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sleep")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := New()
	_, err := r.Run(ctx, t.TempDir(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFakeRecordsCalls(t *testing.T) {
	f := &Fake{
		Available: map[string]bool{"gosec": true},
		Outputs:   map[string]string{"gosec": "0 issues"},
	}

	assert.True(t, f.Look("gosec"))
	assert.False(t, f.Look("bandit"))

	out, err := f.Run(context.Background(), ".", "gosec", "./...")
	require.NoError(t, err)
	assert.Equal(t, "0 issues", out)
	assert.Equal(t, []string{"gosec ./..."}, f.Calls)
}
