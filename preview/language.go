package preview

import (
	"path"
	"strings"
)

var languages = map[string]string{
	".bash":  "bash",
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".scss":  "scss",
	".sh":    "bash",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "typescript",
	".txt":   "plaintext",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
}

var fileNames = map[string]string{
	"dockerfile": "dockerfile",
	"makefile":   "makefile",
	"go.mod":     "go",
}

// Language guesses a highlighting language from the file name. Unknown
// files are "plaintext".
func Language(name string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, `\`, "/")))
	if lang, ok := fileNames[base]; ok {
		return lang
	}
	if lang, ok := languages[path.Ext(base)]; ok {
		return lang
	}
	return "plaintext"
}
