package domain

import "strings"

// Toggle is the tri-state value of the global exclusion switch. The fail-safe
// default lives here: only an explicit "false" disables exclusion checking.
type Toggle int

const (
	ToggleUnset Toggle = iota
	ToggleEnabled
	ToggleDisabled
)

// ParseToggle reads a stored setting value. Malformed values map to Unset.
func ParseToggle(raw string) Toggle {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on":
		return ToggleEnabled
	case "false", "0", "off":
		return ToggleDisabled
	default:
		return ToggleUnset
	}
}

// Enabled reports whether exclusion checking is active. Unset behaves as
// enabled.
func (t Toggle) Enabled() bool {
	return t != ToggleDisabled
}

func (t Toggle) String() string {
	switch t {
	case ToggleEnabled:
		return "enabled"
	case ToggleDisabled:
		return "disabled"
	default:
		return "unset"
	}
}
