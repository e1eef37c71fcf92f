package domain

import "strings"

// Match returns the first enabled pattern contained in the fulfillment text.
// Patterns must be ordered by creation time; the earliest created match wins.
// Containment is case-sensitive, never regex.
func Match(patterns []ExclusionPattern, fulfillmentType string) *ExclusionPattern {
	for i := range patterns {
		if !patterns[i].Enabled {
			continue
		}
		if strings.Contains(fulfillmentType, patterns[i].Pattern) {
			return &patterns[i]
		}
	}
	return nil
}
