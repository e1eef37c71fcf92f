package domain

import (
	"regexp"
	"strings"
)

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	quantitySuffix  = regexp.MustCompile(`\s*\[\d+\]$`)
)

// NormalizeOptionName trims, collapses internal whitespace, and strips a
// trailing bracketed quantity suffix such as "[2]".
func NormalizeOptionName(optionName string) string {
	normalized := innerWhitespace.ReplaceAllString(strings.TrimSpace(optionName), " ")
	return strings.TrimSpace(quantitySuffix.ReplaceAllString(normalized, ""))
}

// NormalizeProductCode trims surrounding whitespace.
func NormalizeProductCode(productCode string) string {
	return strings.TrimSpace(productCode)
}
