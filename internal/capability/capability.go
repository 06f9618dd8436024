// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package capability

import (
	"fmt"
	"strings"
)

// Set is a fixed-width bit-set of capabilities. New capabilities claim the
// next free bit; existing bit positions are never redefined, so persisted
// grants stay valid across releases.
type Set uint32

const (
	Read     Set = 1 << 0
	Write    Set = 1 << 1
	Delete   Set = 1 << 2
	Share    Set = 1 << 3
	Admin    Set = 1 << 4
	Download Set = 1 << 5
	Comment  Set = 1 << 6
	Export   Set = 1 << 7

	None Set = 0

	// Named combinations exposed to role defaults and the admin API.
	Reader      = Read | Download
	Editor      = Reader | Write | Comment
	Contributor = Editor | Delete
	Owner       = Read | Write | Delete | Share | Admin | Download | Comment | Export
)

// width is the number of currently defined capability bits.
const width = 8

var names = []struct {
	bit  Set
	name string
}{
	{Read, "READ"},
	{Write, "WRITE"},
	{Delete, "DELETE"},
	{Share, "SHARE"},
	{Admin, "ADMIN"},
	{Download, "DOWNLOAD"},
	{Comment, "COMMENT"},
	{Export, "EXPORT"},
}

var namedSets = map[string]Set{
	"READER":      Reader,
	"EDITOR":      Editor,
	"CONTRIBUTOR": Contributor,
	"OWNER":       Owner,
}

// Has reports whether s contains every bit in required.
func (s Set) Has(required Set) bool {
	return s&required == required
}

// Union returns the combination of s and other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Valid reports whether s only uses defined capability bits and is non-empty.
func (s Set) Valid() bool {
	return s != None && s>>width == 0
}

// Labels renders the set as human-readable capability names, in bit order.
// Used for audit payloads and the admin UI.
func (s Set) Labels() []string {
	var labels []string
	for _, n := range names {
		if s&n.bit != 0 {
			labels = append(labels, n.name)
		}
	}
	return labels
}

// String implements fmt.Stringer, rendering "READ|WRITE" style sets.
func (s Set) String() string {
	labels := s.Labels()
	if len(labels) == 0 {
		return "NONE"
	}
	return strings.Join(labels, "|")
}

// Parse converts a "READ|WRITE" style string, a named set ("EDITOR"), or a
// mix of both into a Set. Unknown names are an error.
func Parse(v string) (Set, error) {
	var set Set
	for _, part := range strings.Split(v, "|") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if named, ok := namedSets[part]; ok {
			set |= named
			continue
		}
		found := false
		for _, n := range names {
			if n.name == part {
				set |= n.bit
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown capability %q", part)
		}
	}
	if set == None {
		return None, fmt.Errorf("empty capability set")
	}
	return set, nil
}
