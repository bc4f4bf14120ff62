package helptext

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		matched bool
	}{
		{
			name:    "plain help line",
			line:    "::::usage: mytool [options]",
			want:    "usage: mytool [options]",
			matched: true,
		},
		{
			name:    "percent and quote escapes",
			line:    `::::Example %%usage%% with a ""quoted"" word`,
			want:    `Example %usage% with a "quoted" word`,
			matched: true,
		},
		{
			name:    "no escapes passes through unchanged",
			line:    "::::  indented, trailing spaces kept  ",
			want:    "  indented, trailing spaces kept  ",
			matched: true,
		},
		{
			name:    "odd percent run decodes pairs plus trailing literal",
			line:    "::::100%%% done",
			want:    "100%% done",
			matched: true,
		},
		{
			name:    "odd quote run decodes pairs plus trailing literal",
			line:    `::::say """hi`,
			want:    `say ""hi`,
			matched: true,
		},
		{
			name:    "empty help line",
			line:    "::::",
			want:    "",
			matched: true,
		},
		{
			name:    "non-marker line",
			line:    "plain line, no marker",
			matched: false,
		},
		{
			name:    "short comment is not a marker",
			line:    ":::almost",
			matched: false,
		},
		{
			name:    "marker must start the line",
			line:    "  ::::indented marker",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.line)
			if ok != tt.matched {
				t.Fatalf("Decode(%q) matched = %v, want %v", tt.line, ok, tt.matched)
			}
			if ok && got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	lines := []string{
		"plain text",
		"100% organic",
		`a "quoted" word`,
		`%APPDATA% is "special": 50%% literal`,
		"",
		"  leading and trailing  ",
	}

	for _, line := range lines {
		got, ok := Decode(Encode(line))
		if !ok {
			t.Fatalf("Decode(Encode(%q)) did not match marker", line)
		}
		if got != line {
			t.Errorf("round trip of %q = %q", line, got)
		}
	}
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.cmd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := writeSource(t, ""+
		"@echo off\n"+
		`::::Example %%usage%% with a ""quoted"" word`+"\n"+
		"plain line, no marker\n")

	seq, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for line := range seq {
		got = append(got, line)
	}

	want := []string{`Example %usage% with a "quoted" word`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded lines mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractPreservesOrder(t *testing.T) {
	path := writeSource(t, "::::A\n::::B\n::::C\n")

	seq, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for line := range seq {
		got = append(got, line)
	}

	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractIsRestartable(t *testing.T) {
	path := writeSource(t, "::::first\n::::second\n")

	seq, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	var first, second []string
	for line := range seq {
		first = append(first, line)
	}
	for line := range seq {
		second = append(second, line)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs from first (-first +second):\n%s", diff)
	}
}

func TestExtractEarlyStop(t *testing.T) {
	path := writeSource(t, "::::A\n::::B\n::::C\n")

	seq, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for line := range seq {
		got = append(got, line)
		break
	}

	if len(got) != 1 || got[0] != "A" {
		t.Errorf("early stop collected %v, want [A]", got)
	}
}

func TestExtractNoMatches(t *testing.T) {
	path := writeSource(t, "@echo off\nrem nothing here\n")

	seq, err := Extract(path)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for range seq {
		count++
	}
	if count != 0 {
		t.Errorf("expected empty sequence, got %d lines", count)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "does-not-exist.cmd"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not satisfy fs.ErrNotExist", err)
	}
}

func TestDecodeAll(t *testing.T) {
	src := []byte("::::one\nnoise\n::::two %% done\n")

	got := DecodeAll(src)
	want := []string{"one", "two % done"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeAll mismatch (-want +got):\n%s", diff)
	}
}
