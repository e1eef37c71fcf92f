package domain

import (
	"strings"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
)

// BuildCourierLookup indexes enabled courier mappings by lowercased display
// name and alias. Canonical names are registered before aliases, so an alias
// can never shadow another courier's name.
func BuildCourierLookup(mappings []courierdomain.CourierMapping) map[string]string {
	lookup := make(map[string]string, len(mappings))
	for _, mapping := range mappings {
		if !mapping.Enabled {
			continue
		}
		register(lookup, mapping.Name, mapping.Code)
	}
	for _, mapping := range mappings {
		if !mapping.Enabled {
			continue
		}
		for _, alias := range mapping.Aliases {
			register(lookup, alias, mapping.Code)
		}
	}
	return lookup
}

// ResolveCourier finds the canonical code for a supplier-entered courier
// name. Matching is exact after trimming and lowercasing; no fuzzy matching.
func ResolveCourier(lookup map[string]string, courierName string) (string, bool) {
	code, ok := lookup[normalizeCourierName(courierName)]
	return code, ok
}

func register(lookup map[string]string, name, code string) {
	key := normalizeCourierName(name)
	if key == "" {
		return
	}
	if _, exists := lookup[key]; exists {
		return
	}
	lookup[key] = code
}

func normalizeCourierName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
