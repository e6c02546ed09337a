package utilities

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

func PrintASCII() {
	fmt.Println(``)
	fmt.Println(`C O V E R R`)
	fmt.Println(``)
	return
}

func NormalizeTagValue(s string) string {
	// Trim + NFC normalization avoids false mismatches (é vs. é, trailing spaces, etc.)
	return norm.NFC.String(strings.TrimSpace(s))
}

// canonicalize for robust matching (trim, NFC, lower)
func Canon(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// normalize a path for matching across OSes (case-insensitive, forward slashes)
func NormPath(s string) string {
	s = filepath.Clean(s)
	s = filepath.ToSlash(s)
	return strings.ToLower(s)
}

// HasSupportedExtension reports whether the path carries one of the given
// file extensions. Comparison is case-insensitive.
func HasSupportedExtension(path string, extensions map[string]bool) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}
