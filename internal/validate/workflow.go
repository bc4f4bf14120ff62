package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// workflow is the subset of a GitHub Actions workflow the validators need
type workflow struct {
	Name        string           `yaml:"name"`
	Permissions permissions      `yaml:"permissions"`
	Jobs        map[string]wfJob `yaml:"jobs"`
}

type wfJob struct {
	Permissions permissions `yaml:"permissions"`
	Steps       []wfStep    `yaml:"steps"`
}

type wfStep struct {
	Name string `yaml:"name"`
	Uses string `yaml:"uses"`
	Run  string `yaml:"run"`
}

// permissions models the two YAML shapes GitHub accepts: the "read-all"
// style scalar and the scope map.
type permissions struct {
	Set    bool
	All    string
	Scopes map[string]string
}

func (p *permissions) UnmarshalYAML(node *yaml.Node) error {
	p.Set = true
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.All)
	case yaml.MappingNode:
		return node.Decode(&p.Scopes)
	default:
		return fmt.Errorf("unexpected permissions node kind %d", node.Kind)
	}
}

// readOnly reports whether the permissions restrict the workflow to reads
func (p permissions) readOnly() bool {
	if p.All == "read-all" {
		return true
	}
	return p.Scopes["contents"] == "read"
}

// parsedWorkflow pairs a workflow with its file name and raw content
type parsedWorkflow struct {
	File     string
	Raw      string
	Workflow workflow
	Err      error
}

// loadWorkflows parses every workflow file under .github/workflows. A file
// that fails to parse is still returned, with Err set, so callers can
// report it instead of silently skipping it.
func loadWorkflows(root string) []parsedWorkflow {
	dir := filepath.Join(root, ".github", "workflows")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var parsed []parsedWorkflow
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}

		pw := parsedWorkflow{File: name}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			pw.Err = err
		} else {
			pw.Raw = string(data)
			pw.Err = yaml.Unmarshal(data, &pw.Workflow)
		}
		parsed = append(parsed, pw)
	}
	return parsed
}

// uses returns every "uses:" reference in the workflow, in job order
func (w workflow) uses() []string {
	var refs []string
	for _, job := range sortedKeys(w.Jobs) {
		for _, step := range job.Steps {
			if step.Uses != "" {
				refs = append(refs, step.Uses)
			}
		}
	}
	return refs
}
