// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package capability

import (
	"reflect"
	"testing"
)

func TestNamedSets(t *testing.T) {
	testCases := []struct {
		name     string
		set      Set
		expected Set
	}{
		{"reader", Reader, 33},
		{"editor", Editor, 99},
		{"contributor", Contributor, 103},
		{"owner", Owner, 255},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, tc.set)
			}
		})
	}
}

func TestHas(t *testing.T) {
	testCases := []struct {
		name     string
		set      Set
		required Set
		expected bool
	}{
		{"exact bit", Read, Read, true},
		{"subset", Editor, Read | Comment, true},
		{"missing bit", Editor, Delete, false},
		{"owner has everything", Owner, Read | Write | Delete | Share | Admin | Download | Comment | Export, true},
		{"empty set has nothing", None, Read, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.set.Has(tc.required); got != tc.expected {
				t.Errorf("Has(%v, %v) = %v, expected %v", tc.set, tc.required, got, tc.expected)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if None.Valid() {
		t.Error("empty set must not be valid")
	}
	if !Owner.Valid() {
		t.Error("owner set must be valid")
	}
	if (Set(1 << 8)).Valid() {
		t.Error("bits outside the defined width must not be valid")
	}
}

func TestLabelsAndString(t *testing.T) {
	set := Read | Write | Comment
	expected := []string{"READ", "WRITE", "COMMENT"}
	if got := set.Labels(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected labels %v, got %v", expected, got)
	}
	if got := set.String(); got != "READ|WRITE|COMMENT" {
		t.Errorf("expected READ|WRITE|COMMENT, got %s", got)
	}
	if got := None.String(); got != "NONE" {
		t.Errorf("expected NONE, got %s", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for name, set := range map[string]Set{
		"READER":      Reader,
		"EDITOR":      Editor,
		"CONTRIBUTOR": Contributor,
		"OWNER":       Owner,
	} {
		parsed, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%s): %v", name, err)
		}
		if parsed != set {
			t.Errorf("Parse(%s) = %d, expected %d", name, parsed, set)
		}

		// Rendering the set and parsing it back must be lossless.
		back, err := Parse(set.String())
		if err != nil {
			t.Fatalf("Parse(%s): %v", set.String(), err)
		}
		if back != set {
			t.Errorf("round-trip of %s lost bits: %d != %d", name, back, set)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("READ|FLY"); err == nil {
		t.Error("expected error for unknown capability")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty input")
	}
}
