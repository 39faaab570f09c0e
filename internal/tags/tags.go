// Package tags parses free-text tag input.
package tags

import "strings"

// fullWidthComma is the CJK full-width comma (U+FF0C), accepted as a separator.
const fullWidthComma = "，"

// Parse splits a comma separated tag string into trimmed, non-empty tags in
// input order. ASCII and full-width commas are both separators.
func Parse(input string) []string {
	normalized := strings.ReplaceAll(input, fullWidthComma, ",")

	parts := strings.Split(normalized, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			result = append(result, tag)
		}
	}
	return result
}

// Dedupe trims tags and removes repeats, keeping the first occurrence.
// Comparison is case-sensitive and blank tags are dropped.
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
