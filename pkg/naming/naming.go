// Package naming turns free-text file names into node and asset names and resolves output locations.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// nonWord matches runs of characters that are neither letters, digits nor underscores, in any script.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// CacheDirName is the directory, under the cache root, shared by every file cache node.
const CacheDirName = "uv_tool_cache"

// ExportSuffix is appended to the asset name of the exported file.
const ExportSuffix = "_NewUV.fbx"

// SanitizeName collapses every run of non-word characters into a single underscore and prefixes names
// starting with a digit with an underscore.
func SanitizeName(name string) string {
	sanitized := nonWord.ReplaceAllString(name, "_")

	if first, _ := utf8.DecodeRuneInString(sanitized); unicode.IsDigit(first) {
		sanitized = "_" + sanitized
	}

	return sanitized
}

// Base returns the last element of p, accepting both slash and backslash separators.
func Base(p string) string {
	p = strings.TrimRight(p, `/\`)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}

	return p
}

// Dir returns everything before the last element of p.
func Dir(p string) string {
	p = strings.TrimRight(p, `/\`)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		if i == 0 {
			return p[:1]
		}

		return p[:i]
	}

	return "."
}

// Stem returns the base name of p without its final extension.
func Stem(p string) string {
	base := Base(p)
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[:i]
	}

	return base
}

// AssetName derives the asset name from an import path: its stem, sanitized. A non-empty stem never
// sanitizes to an empty name.
func AssetName(importPath string) string {
	return SanitizeName(Stem(importPath))
}

// ExportFile returns <exportDir>/<asset>_NewUV.fbx.
func ExportFile(exportDir, asset string) string {
	return strings.TrimRight(exportDir, `/\`) + "/" + asset + ExportSuffix
}
