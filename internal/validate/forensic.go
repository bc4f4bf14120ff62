package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// forensicFiles are the extra documentation files forensic tools must carry
var forensicFiles = []string{"METHODOLOGY.md", "VALIDATION.md", "LEGAL.md"}

// Forensic validates forensic tool documentation requirements
type Forensic struct {
	root string
}

// NewForensic creates a forensic standards validator rooted at root
func NewForensic(root string) *Forensic {
	return &Forensic{root: root}
}

func (v *Forensic) Name() string { return "forensic" }

// Validate checks for the forensic documentation set
func (v *Forensic) Validate(ctx context.Context) ([]Result, error) {
	var results []Result

	for _, filename := range forensicFiles {
		check := "forensic_file_" + filename
		if _, err := os.Stat(filepath.Join(v.root, filename)); err == nil {
			results = append(results, pass(check,
				fmt.Sprintf("Required forensic documentation file exists: %s", filename)))
		} else {
			results = append(results, fail(check,
				fmt.Sprintf("Missing required forensic documentation: %s", filename)))
		}
	}

	return results, nil
}
