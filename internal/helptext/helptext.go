// Package helptext extracts embedded help documentation from script files.
//
// The convention comes from the Positronikal batch-script template: help
// lines are stored inside the script itself, prefixed with "::::". Literal
// percent signs are doubled ("%%") and literal quotation marks are doubled
// ("\"\"") so the host interpreter never expands them. This package decodes
// that convention back into the authored text.
package helptext

import (
	"bufio"
	"bytes"
	"fmt"
	"iter"
	"os"
	"strings"
)

// Marker is the prefix identifying a line as embedded help text.
const Marker = "::::"

// Decode strips the marker prefix from line and resolves the doubling
// escapes. Percent escapes are resolved before quote escapes; the order is
// fixed and covered by tests. Returns false when line does not begin with
// the marker.
//
// An odd run of percent or quote characters decodes as pairs plus one
// literal trailing character. That input is outside the authored
// convention, so pass-through is best effort rather than an error.
func Decode(line string) (string, bool) {
	if !strings.HasPrefix(line, Marker) {
		return "", false
	}
	s := strings.TrimPrefix(line, Marker)
	s = strings.ReplaceAll(s, "%%", "%")
	s = strings.ReplaceAll(s, `""`, `"`)
	return s, true
}

// Encode is the inverse of Decode: it doubles literal percent and quote
// characters and prepends the marker. Decode(Encode(x)) == x for any x.
func Encode(line string) string {
	s := strings.ReplaceAll(line, "%", "%%")
	s = strings.ReplaceAll(s, `"`, `""`)
	return Marker + s
}

// Extract returns the decoded help lines of the file at path as a lazy
// sequence, in source order. The sequence is restartable: each range opens
// its own file handle and rescans from the top.
//
// A path that cannot be opened returns an error satisfying
// errors.Is(err, fs.ErrNotExist) for missing files; no partial sequence is
// produced. A file with no marker lines yields an empty sequence, not an
// error.
func Extract(path string) (iter.Seq[string], error) {
	// Probe once so the caller sees NotFound eagerly instead of a
	// silently empty sequence.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("help source: %w", err)
	}
	f.Close()

	return func(yield func(string) bool) {
		f, err := os.Open(path)
		if err != nil {
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			decoded, ok := Decode(scanner.Text())
			if !ok {
				continue
			}
			if !yield(decoded) {
				return
			}
		}
	}, nil
}

// DecodeAll decodes every marker line in src, in order. Intended for
// in-memory sources such as embedded usage text.
func DecodeAll(src []byte) []string {
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		if decoded, ok := Decode(scanner.Text()); ok {
			out = append(out, decoded)
		}
	}
	return out
}
