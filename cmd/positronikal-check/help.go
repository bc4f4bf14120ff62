package main

import (
	_ "embed"
	"strings"

	"github.com/positronikal/standards-check/internal/helptext"
)

// usageSource carries the CLI examples in the same embedded-help convention
// the batch-script templates use, so the extractor documents its own tool.
//
//go:embed usage.txt
var usageSource []byte

// usageEpilog decodes the embedded examples for the root command help
func usageEpilog() string {
	return strings.Join(helptext.DecodeAll(usageSource), "\n")
}
