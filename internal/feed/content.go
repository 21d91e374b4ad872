package feed

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxContentChars is the character budget for captured file content.
const MaxContentChars = 500

// BinarySentinel replaces content for files we will not read.
const BinarySentinel = "[Binary file]"

var textExtensions = []string{
	".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".html", ".css",
	".json", ".md", ".txt", ".yaml", ".yml", ".toml", ".sql", ".sh",
	".c", ".cpp", ".h", ".java", ".rs", ".rb",
}

// IsTextFile reports whether path has a known text extension.
func IsTextFile(path string) bool {
	for _, ext := range textExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ReadTail returns the trailing maxChars characters of a text file.
// It never fails: missing files yield an empty string, non-text files the
// binary sentinel, and read errors an error sentinel. The file may have
// been deleted between the filesystem event and this read.
func ReadTail(path string, maxChars int) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}

	if !IsTextFile(path) {
		return BinarySentinel
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("[Error reading file: %v]", err)
	}

	content := string(data)
	if len(content) > maxChars {
		return "..." + Tail(content, maxChars)
	}
	return content
}

// Tail returns at most max trailing bytes of s, advancing the cut to the
// next rune boundary so a multibyte character is never split.
func Tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	i := len(s) - max
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
