package output

import (
	"path/filepath"
	"strings"
)

const dockerfileBaseName = "dockerfile"

// languageHints maps lower-case file extensions to markdown fence labels.
var languageHints = map[string]string{
	".py":         "python",
	".js":         "javascript",
	".jsx":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".java":       "java",
	".c":          "c",
	".cpp":        "cpp",
	".cs":         "csharp",
	".go":         "go",
	".rs":         "rust",
	".php":        "php",
	".rb":         "ruby",
	".swift":      "swift",
	".kt":         "kotlin",
	".scala":      "scala",
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".json":       "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".md":         "markdown",
	".sh":         "bash",
	".xml":        "xml",
	".sql":        "sql",
	".dockerfile": "dockerfile",
	".toml":       "toml",
}

// LanguageHint returns the markdown fence label for a file based on its
// extension. A bare Dockerfile is recognized by name; every other unknown
// extension yields an empty hint and an untagged fence.
func LanguageHint(fileName string) string {
	baseName := strings.ToLower(filepath.Base(fileName))
	if baseName == dockerfileBaseName {
		return dockerfileBaseName
	}
	return languageHints[strings.ToLower(filepath.Ext(fileName))]
}
