package core

import "strings"

// UnknownLanguage is the label for extensions not in the language table.
const UnknownLanguage = "Unknown"

// languageByExtension maps lowercase file extensions to display labels.
var languageByExtension = map[string]string{
	"go":    "Go",
	"py":    "Python",
	"js":    "JavaScript",
	"jsx":   "JavaScript",
	"ts":    "TypeScript",
	"tsx":   "TypeScript",
	"java":  "Java",
	"c":     "C",
	"h":     "C",
	"cpp":   "C++",
	"hpp":   "C++",
	"cs":    "C#",
	"rb":    "Ruby",
	"rs":    "Rust",
	"php":   "PHP",
	"swift": "Swift",
	"kt":    "Kotlin",
	"sh":    "Shell",
	"sql":   "SQL",
	"html":  "HTML",
	"css":   "CSS",
	"json":  "JSON",
	"yaml":  "YAML",
	"yml":   "YAML",
	"xml":   "XML",
	"toml":  "TOML",
	"md":    "Markdown",
	"txt":   "Text",
	"csv":   "CSV",
	"pdf":   "PDF",
	"doc":   "Word",
	"docx":  "Word",
	"xls":   "Excel",
	"xlsx":  "Excel",
	"ppt":   "PowerPoint",
	"pptx":  "PowerPoint",
}

// binaryExtensions holds the extensions treated as binary-like. Everything
// else defaults to text-like.
var binaryExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"xls":  true,
	"xlsx": true,
	"ppt":  true,
	"pptx": true,
}

// ExtensionOf returns the substring after the last dot in name. A name
// with no dot, or ending in a dot, yields the empty string.
func ExtensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// ClassifyLanguage returns the display label for the file's extension,
// or UnknownLanguage when the extension is not in the table.
func ClassifyLanguage(name string) string {
	if label, ok := languageByExtension[strings.ToLower(ExtensionOf(name))]; ok {
		return label
	}
	return UnknownLanguage
}

// ClassifyKind reports whether files with the given extension are handled
// as text or binary. The comparison is case-insensitive.
func ClassifyKind(ext string) Kind {
	if binaryExtensions[strings.ToLower(ext)] {
		return KindBinary
	}
	return KindText
}
