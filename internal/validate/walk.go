package validate

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// languageExtensions maps each recognized language to its file extensions
var languageExtensions = map[string][]string{
	"python":     {".py"},
	"c":          {".c", ".h"},
	"cpp":        {".cpp", ".cc", ".cxx", ".hpp", ".hh"},
	"javascript": {".js", ".jsx"},
	"typescript": {".ts", ".tsx"},
	"go":         {".go"},
	"java":       {".java"},
	"shell":      {".sh", ".bash"},
	"perl":       {".pl", ".pm"},
	"php":        {".php"},
	"powershell": {".ps1", ".psm1", ".psd1"},
	"html":       {".html", ".htm"},
	"css":        {".css", ".scss", ".less"},
	"awk":        {".awk"},
	"batch":      {".bat", ".cmd"},
	"ruby":       {".rb"},
}

// excludedDirs are skipped entirely when walking a repository
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"venv":         true,
	".venv":        true,
	"dist":         true,
	"build":        true,
}

// walkFiles visits every regular file under root that is not inside an
// excluded directory and whose name ends with one of exts. An empty exts
// list matches every file. Paths are returned relative to root, sorted for
// deterministic reports.
func walkFiles(root string, exts []string) []string {
	var files []string

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, never fatal.
			return nil
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if len(exts) == 0 || hasAnySuffix(d.Name(), exts) {
			if rel, err := filepath.Rel(root, path); err == nil {
				files = append(files, rel)
			}
		}
		return nil
	})

	sort.Strings(files)
	return files
}

// sourceFiles returns every file under root belonging to a recognized
// language.
func sourceFiles(root string) []string {
	var exts []string
	for _, langExts := range languageExtensions {
		exts = append(exts, langExts...)
	}
	return walkFiles(root, exts)
}

// filesForLanguages returns files under root for the named languages only.
func filesForLanguages(root string, languages ...string) []string {
	var exts []string
	for _, lang := range languages {
		exts = append(exts, languageExtensions[lang]...)
	}
	return walkFiles(root, exts)
}

// detectLanguages reports which recognized languages appear under root,
// sorted by name.
func detectLanguages(root string) []string {
	present := make(map[string]bool)
	for _, file := range sourceFiles(root) {
		for lang, exts := range languageExtensions {
			if hasAnySuffix(file, exts) {
				present[lang] = true
			}
		}
	}

	detected := make([]string, 0, len(present))
	for lang := range present {
		detected = append(detected, lang)
	}
	sort.Strings(detected)
	return detected
}

func hasAnySuffix(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// truncateList joins up to max entries with an ellipsis suffix when more
// were found, matching the report style of the original checker.
func truncateList(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + "..."
}
