package domain

import "testing"

func TestMatchEarliestPatternWins(t *testing.T) {
	patterns := []ExclusionPattern{
		{ID: 1, Pattern: "A", Enabled: true},
		{ID: 2, Pattern: "AB", Enabled: true},
	}

	matched := Match(patterns, "XAB Y")
	if matched == nil {
		t.Fatal("expected a match")
	}
	if matched.Pattern != "A" {
		t.Fatalf("expected earliest pattern to win, got %q", matched.Pattern)
	}
}

func TestMatchIsCaseSensitive(t *testing.T) {
	patterns := []ExclusionPattern{
		{ID: 1, Pattern: "direct", Enabled: true},
	}

	if Match(patterns, "DIRECT shipment") != nil {
		t.Fatal("matching must be case-sensitive")
	}
	if Match(patterns, "direct shipment") == nil {
		t.Fatal("expected lower-case match")
	}
}

func TestMatchSkipsDisabledPatterns(t *testing.T) {
	patterns := []ExclusionPattern{
		{ID: 1, Pattern: "A", Enabled: false},
		{ID: 2, Pattern: "AB", Enabled: true},
	}

	matched := Match(patterns, "XAB Y")
	if matched == nil || matched.Pattern != "AB" {
		t.Fatalf("expected disabled pattern to be skipped, got %+v", matched)
	}
}

func TestMatchNoPatterns(t *testing.T) {
	if Match(nil, "anything") != nil {
		t.Fatal("no patterns must mean no match")
	}
}
